package httpkit

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	perrs "skillproof/internal/platform/errors"
)

// Param returns the trimmed route parameter name
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// UUIDParam returns the route parameter name in canonical uuid form
func UUIDParam(r *http.Request, name string) (string, error) {
	raw := Param(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", perrs.WithField(perrs.Newf(perrs.ErrorCodeValidation, "%s must be a uuid", name), name)
	}
	return id.String(), nil
}
