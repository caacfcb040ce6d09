package graphql

import (
	"context"
	"net/http"
)

// requestContextKey is the context.Context key under which the RequestContext
// for the current HTTP request is stored. Resolvers reach it through
// RequestFromContext rather than a bespoke Context interface, so the rest of
// the executor only ever depends on the standard context.Context.
type requestContextKey struct{}

// RequestContext carries the transport-level request state a resolver might
// need: the inbound *http.Request, the http.ResponseWriter it can write
// response headers to (for setting cookies from a mutation, for instance),
// and a scratch Keys map for per-request values set by middleware.
type RequestContext struct {
	Request *http.Request
	Writer  http.ResponseWriter
	Keys    map[interface{}]interface{}
}

// WithRequestContext attaches rc to ctx for later retrieval by resolvers via
// RequestFromContext.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestFromContext returns the RequestContext installed by the HTTP
// handler, or nil if this execution was not started from one (e.g. this is
// an internally-issued query with no HTTP request behind it).
func RequestFromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc
}

// Get retrieves a value previously stashed on the request by middleware.
func (c *RequestContext) Get(key interface{}) interface{} {
	if c == nil {
		return nil
	}
	return c.Keys[key]
}

// Set stashes a value on the request for downstream resolvers to read back
// with Get.
func (c *RequestContext) Set(key, value interface{}) {
	if c.Keys == nil {
		c.Keys = make(map[interface{}]interface{})
	}
	c.Keys[key] = value
}
