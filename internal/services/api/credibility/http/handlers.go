// Package http provides http transport for credibility scoring
package http

import (
	stdhttp "net/http"
	"strings"

	"skillproof/internal/modkit/httpkit"
	"skillproof/internal/services/api/credibility/domain"
)

// Register mounts credibility endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// profile summary with per skill results
	httpkit.Get(r, "/profiles/{profileID}", h.profile)

	// one skill
	httpkit.Get(r, "/profiles/{profileID}/skills/{skillID}", h.skill)

	// narrated evidence history
	httpkit.Get(r, "/profiles/{profileID}/skills/{skillID}/timeline", h.timeline)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /credibility/profiles/{profileID} Credibility credibilityProfile
// @Summary Profile credibility
// @Description Scores every declared skill from one evidence snapshot and aggregates them
// @Tags Credibility
// @Produce json
// @Security BearerAuth
// @Param profileID path string true "Profile id" format(uuid)
// @Success 200 {object} domain.ProfileCredibility "ok"
// @Failure 400 {object} httpkit.Envelope "invalid id"
// @Failure 403 {object} httpkit.Envelope "profile not visible"
// @Failure 404 {object} httpkit.Envelope "profile not found"
// @Router /credibility/profiles/{profileID} [get]
func (h *handlers) profile(r *stdhttp.Request) (any, error) {
	viewer, err := httpkit.Viewer(r)
	if err != nil {
		return nil, err
	}
	pid, err := httpkit.UUIDParam(r, "profileID")
	if err != nil {
		return nil, err
	}
	return h.svc.Profile(r.Context(), viewer, pid)
}

// swagger:route GET /credibility/profiles/{profileID}/skills/{skillID} Credibility credibilitySkill
// @Summary Skill credibility
// @Tags Credibility
// @Produce json
// @Security BearerAuth
// @Param profileID path string true "Profile id" format(uuid)
// @Param skillID path string true "Skill id" format(uuid)
// @Success 200 {object} domain.SkillCredibility "ok"
// @Failure 404 {object} httpkit.Envelope "profile or skill not found"
// @Router /credibility/profiles/{profileID}/skills/{skillID} [get]
func (h *handlers) skill(r *stdhttp.Request) (any, error) {
	viewer, pid, sid, err := ids(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Skill(r.Context(), viewer, pid, sid)
}

// swagger:route GET /credibility/profiles/{profileID}/skills/{skillID}/timeline Credibility credibilityTimeline
// @Summary Skill timeline
// @Description One sentence per evidence item in ascending time, undated items last
// @Tags Credibility
// @Produce json
// @Security BearerAuth
// @Param profileID path string true "Profile id" format(uuid)
// @Param skillID path string true "Skill id" format(uuid)
// @Param project query string false "Project context rendered into each sentence"
// @Success 200 {object} domain.SkillTimeline "ok"
// @Router /credibility/profiles/{profileID}/skills/{skillID}/timeline [get]
func (h *handlers) timeline(r *stdhttp.Request) (any, error) {
	viewer, pid, sid, err := ids(r)
	if err != nil {
		return nil, err
	}
	project := strings.TrimSpace(r.URL.Query().Get("project"))
	return h.svc.Timeline(r.Context(), viewer, pid, sid, project)
}

func ids(r *stdhttp.Request) (viewer, profileID, skillID string, err error) {
	if viewer, err = httpkit.Viewer(r); err != nil {
		return
	}
	if profileID, err = httpkit.UUIDParam(r, "profileID"); err != nil {
		return
	}
	skillID, err = httpkit.UUIDParam(r, "skillID")
	return
}
