// Package httpkit is what modules import to declare routes; it re-exports the platform http types
package httpkit

import (
	"net/http"
	"strings"

	phttp "skillproof/internal/platform/net/http"
	"skillproof/internal/platform/net/middleware"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

func OK(data any) Response { return phttp.OK(data) }

func Error(err error) Response { return phttp.Error(err) }

// Call adapts a bodyless handler; a returned Response is written as is, anything else as 200 data
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}

func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// PostJSON decodes and validates a T body before calling h
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// MountAPI scopes mount under /api/{version} behind mw
func MountAPI(r Router, version string, mw []middleware.Middleware, mount func(Router)) {
	r.Route("/api/"+strings.TrimPrefix(version, "/"), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

func MountAPIV1(r Router, mw []middleware.Middleware, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
