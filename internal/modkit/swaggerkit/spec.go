// Package swaggerkit mounts Swagger UI and serves a decorated OpenAPI document
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"skillproof/internal/platform/config"
	perr "skillproof/internal/platform/errors"
	pnet "skillproof/internal/platform/net"
)

// SpecMutator edits the parsed document before it is served
type SpecMutator func(spec map[string]any)

var (
	mutMu    sync.Mutex
	mutators []SpecMutator
)

// Register queues m for every served document
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mutMu.Lock()
	mutators = append(mutators, m)
	mutMu.Unlock()
}

// BearerScheme is the security scheme @Security annotations name
const BearerScheme = "BearerAuth"

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		suffix := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", "")
		spec, err := decorate(docReader(), suffix)
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

func decorate(raw, titleSuffix string) (map[string]any, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, err
	}
	asOAS30(spec, "/api/v1")
	if info, ok := spec["info"].(map[string]any); ok && titleSuffix != "" {
		if title, ok := info["title"].(string); ok {
			info["title"] = title + " " + titleSuffix
		}
	}

	Component(spec, "securitySchemes")[BearerScheme] = map[string]any{
		"type":         "http",
		"scheme":       "bearer",
		"bearerFormat": "opaque",
	}
	delete(spec, "securityDefinitions")

	Component(spec, "schemas")["ErrorResponse"] = envelopeSchema()
	defaults := map[int]error{
		http.StatusBadRequest:          perr.WithField(perr.New(perr.ErrorCodeValidation, "proof_ref is required"), "proof_ref"),
		http.StatusInternalServerError: perr.PanicErrf("internal error"),
	}
	for status, example := range defaults {
		fillResponse(spec, status, example)
	}

	mutMu.Lock()
	defer mutMu.Unlock()
	for _, m := range mutators {
		m(spec)
	}
	return spec, nil
}

// asOAS30 rewrites the version to 3.0.3, the newest the UI renders
func asOAS30(spec map[string]any, server string) {
	delete(spec, "swagger")
	spec["openapi"] = "3.0.3"
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": server}}
	}
}

// Component returns components.<kind>, creating the path as needed
func Component(spec map[string]any, kind string) map[string]any {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	c, ok := comps[kind].(map[string]any)
	if !ok {
		c = map[string]any{}
		comps[kind] = c
	}
	return c
}

func envelopeSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"required":    []any{"status_code", "status"},
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
	}
}

// fillResponse documents status on every operation that does not already, using example's envelope
func fillResponse(spec map[string]any, status int, example error) {
	code := strconv.Itoa(status)
	resp := map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": pnet.Failure(example, "req-000001"),
			},
		},
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, ok := responses[code]; !ok {
				responses[code] = resp
			}
		}
	}
}
