package http

import (
	"todo-api/pkg/log"

	"go.uber.org/zap"
)

// HTTPLogger defines hooks for logging outgoing requests and their responses
type HTTPLogger interface {
	LogRequest(method, url string, body string)
	LogResponseSuccess(method, url string, httpStatus int, responseBody string, latency int64)
	LogResponseError(method, url string, httpStatus int, responseBody string, latency int64, err error)
	LogRequestRetry(method, url string, httpStatus int, err error, retryCount, maxRetries int)
}

type zapHTTPLogger struct{}

// NewZapHTTPLogger returns an HTTPLogger writing through the application logger
func NewZapHTTPLogger() HTTPLogger {
	return zapHTTPLogger{}
}

func (zapHTTPLogger) LogRequest(method, url string, body string) {
	log.Debug("http request", zap.String("method", method), zap.String("url", url), zap.Int("body_size", len(body)))
}

func (zapHTTPLogger) LogResponseSuccess(method, url string, httpStatus int, _ string, latency int64) {
	log.Debug("http response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (zapHTTPLogger) LogResponseError(method, url string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("http response error",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.String("response", responseBody),
		zap.Int64("latency_ms", latency),
		zap.Error(err))
}

func (zapHTTPLogger) LogRequestRetry(method, url string, httpStatus int, err error, retryCount, maxRetries int) {
	log.Warn("http request retry",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Error(err))
}
