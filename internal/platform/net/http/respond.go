// Package http holds the router facade, the JSON envelope and the API server
package http

import (
	stdhttp "net/http"

	pnet "skillproof/internal/platform/net"
)

// Envelope is the body every JSON endpoint answers with
type Envelope = pnet.Envelope

// Response is what a Handle func returns; an error Body picks the status from its code
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
		reqID := pnet.RequestID(r.Context())
		if err, ok := resp.Body.(error); ok && err != nil {
			pnet.Write(w, pnet.Failure(err, reqID))
			return
		}
		pnet.Write(w, pnet.Reply(resp.Status, resp.Body, reqID))
	}
}

func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

func Error(err error) Response { return Response{Body: err} }
