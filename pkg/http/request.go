package http

import (
	"context"
	"errors"
)

// RequestMethod is the HTTP verb of a Request
type RequestMethod string

const (
	GET  RequestMethod = "GET"
	POST RequestMethod = "POST"
)

// Request builds a single call on a Client. Unset fields fall back to a GET on "/".
type Request struct {
	client *Client
	call   call
}

// NewHttpClientRequest starts a Request bound to client
func NewHttpClientRequest(client *Client) *Request {
	return &Request{
		client: client,
		call:   call{method: string(GET), path: "/"},
	}
}

func (r *Request) WithMethod(method RequestMethod) *Request {
	r.call.method = string(method)
	return r
}

func (r *Request) WithPath(path string) *Request {
	r.call.path = path
	return r
}

// WithHeader adds a header on top of the client's default headers. Empty values are skipped.
func (r *Request) WithHeader(name string, value string) *Request {
	if value == "" {
		return r
	}
	if r.call.headers == nil {
		r.call.headers = make(map[string]string)
	}
	r.call.headers[name] = value
	return r
}

// WithBody sets the value encoded as the JSON request body
func (r *Request) WithBody(body any) *Request {
	r.call.body = body
	return r
}

// WithSuccessResp sets the value a 2xx response body is decoded into
func (r *Request) WithSuccessResp(successResp any) *Request {
	r.call.successResp = successResp
	return r
}

// WithErrorResp sets the value a non-2xx response body is decoded into
func (r *Request) WithErrorResp(errorResp any) *Request {
	r.call.errorResp = errorResp
	return r
}

// Execute sends the request and returns the response status code
func (r *Request) Execute(ctx context.Context) (int, error) {
	if r.client == nil {
		return 0, errors.New("client is required")
	}
	if r.call.method == "" {
		return 0, errors.New("method is required")
	}
	return r.client.doRequestWithBackoff(ctx, r.call)
}
