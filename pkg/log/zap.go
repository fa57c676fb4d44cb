package log

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	sugar  *zap.SugaredLogger
)

// init builds a JSON logger on stdout. LOG_LEVEL picks the level, LOG_FORMAT=console switches
// to the human readable encoder for local runs.
func init() {
	logger = zap.New(
		zapcore.NewCore(encoder(os.Getenv("LOG_FORMAT")), zapcore.AddSync(os.Stdout), level(os.Getenv("LOG_LEVEL"))),
		zap.Fields(zap.String("logName", applicationName())),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)
	sugar = logger.Sugar()
}

func encoder(format string) zapcore.Encoder {
	if strings.EqualFold(format, "console") {
		config := zap.NewDevelopmentEncoderConfig()
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(config)
	}

	config := zap.NewProductionEncoderConfig()
	config.MessageKey = "msg"
	config.TimeKey = "@timestamp"
	config.CallerKey = "logger_name"
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(config)
}

func level(value string) zapcore.Level {
	if value == "" {
		return zap.InfoLevel
	}
	parsed, err := zapcore.ParseLevel(strings.ToLower(value))
	if err != nil {
		return zap.InfoLevel
	}
	return parsed
}

func applicationName() string {
	if name := os.Getenv("APPLICATION_NAME"); name != "" {
		return name
	}
	return "todo-api"
}

// Sync flushes buffered entries, call it before exiting
func Sync() {
	_ = logger.Sync()
}

func Debug(message string, fields ...zap.Field) {
	logger.Debug(message, fields...)
}

func Debugf(message string, args ...any) {
	sugar.Debugf(message, args...)
}

func Info(message string, fields ...zap.Field) {
	logger.Info(message, fields...)
}

func Infof(message string, args ...any) {
	sugar.Infof(message, args...)
}

func Warn(message string, fields ...zap.Field) {
	logger.Warn(message, fields...)
}

func Error(message string, fields ...zap.Field) {
	logger.Error(message, fields...)
}

func Errorf(message string, args ...any) {
	sugar.Errorf(message, args...)
}

// Fatal logs at FatalLevel, then calls os.Exit(1)
func Fatal(message string, fields ...zap.Field) {
	logger.Fatal(message, fields...)
}

func Fatalf(message string, args ...any) {
	sugar.Fatalf(message, args...)
}
