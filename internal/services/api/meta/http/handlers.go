// Package http serves liveness, readiness, build and scoring model endpoints
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"skillproof/internal/core/evidence"
	"skillproof/internal/core/maturity"
	"skillproof/internal/core/provenance"
	"skillproof/internal/core/tier"
	"skillproof/internal/core/version"
	"skillproof/internal/modkit/httpkit"
)

// Pinger is any backend that can report readiness
type Pinger interface {
	Ping(context.Context) error
}

// Check names one readiness dependency; a nil Pinger is reported as skipped
type Check struct {
	Name   string
	Pinger Pinger
}

// Deps are what the meta endpoints report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
	Scoring     maturity.Options
	// ReadyTimeout bounds all readiness pings together; zero means 2s
	ReadyTimeout time.Duration
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{Deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/scoring", h.scoring)
}

type handlers struct{ Deps }

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"skillproof-api"`
	Started string `json:"started"  example:"2026-03-01T09:00:00Z"`
	Now     string `json:"now"      example:"2026-03-01T09:05:00Z"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(time.Now())}, nil
}

// Readiness states
const (
	StatusOK       = "ok"
	StatusFail     = "fail"
	StatusSkipped  = "skipped"
	StatusDegraded = "degraded"
)

// ReadyCheck is the outcome of pinging one dependency
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is fail when any check fails and degraded when one is skipped
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-01T09:05:00Z"`
}

// @Summary Readiness with dependency pings
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.ReadyTimeout)
	defer cancel()

	out := make([]ReadyCheck, len(h.Checks))
	var wg sync.WaitGroup
	for i, c := range h.Checks {
		out[i] = ReadyCheck{Name: c.Name, Status: StatusSkipped}
		if c.Pinger == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Pinger.Ping(ctx); err != nil {
				out[i] = ReadyCheck{Name: c.Name, Status: StatusFail, Error: err.Error()}
				return
			}
			out[i].Status = StatusOK
		}()
	}
	wg.Wait()

	return ReadyResponse{Status: overall(out), Checks: out, Now: stamp(time.Now())}, nil
}

func overall(checks []ReadyCheck) string {
	status := StatusOK
	for _, c := range checks {
		switch c.Status {
		case StatusFail:
			return StatusFail
		case StatusSkipped:
			status = StatusDegraded
		}
	}
	return status
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

// ServiceResponse reports uptime in whole seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"skillproof-api"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt).Seconds()),
	}, nil
}

// ScoringResponse publishes the scoring model so clients can explain a score
type ScoringResponse struct {
	Matchers     []string           `json:"matchers"`
	BaseWeights  map[string]float64 `json:"base_weights"`
	FactorWeight map[string]float64 `json:"factor_weights"`
	TierFloors   map[string]int     `json:"tier_floors"`
	Curves       CurveResponse      `json:"curves"`
	SingleSource int                `json:"single_source_ceiling" example:"54"`
	Build        version.BuildInfo  `json:"build"`
}

// CurveResponse is the saturating curve tuning in effect
type CurveResponse struct {
	TimeScaleDays    float64 `json:"time_scale_days" example:"365"`
	VolumeScale      float64 `json:"volume_scale" example:"3"`
	FreshDays        float64 `json:"fresh_days" example:"30"`
	RecencyScaleDays float64 `json:"recency_scale_days" example:"180"`
}

// @Summary Scoring model and tuning
// @Tags Meta
// @Produce json
// @Success 200 {object} ScoringResponse
// @Router /meta/scoring [get]
func (h *handlers) scoring(*http.Request) (any, error) {
	base := make(map[string]float64, len(evidence.Kinds))
	for _, k := range evidence.Kinds {
		base[string(k)] = evidence.BaseWeight(k)
	}
	return ScoringResponse{
		Matchers:    provenance.Default().Matchers(),
		BaseWeights: base,
		FactorWeight: map[string]float64{
			"time":    maturity.WeightTime,
			"volume":  maturity.WeightVolume,
			"quality": maturity.WeightQuality,
			"recency": maturity.WeightRecency,
		},
		TierFloors: map[string]int{
			tier.Emerging.String(): tier.EmergingFloor,
			tier.Proven.String():   tier.ProvenFloor,
			tier.Expert.String():   tier.ExpertFloor,
		},
		Curves: CurveResponse{
			TimeScaleDays:    h.Scoring.TimeScaleDays,
			VolumeScale:      h.Scoring.VolumeScale,
			FreshDays:        h.Scoring.FreshDays,
			RecencyScaleDays: h.Scoring.RecencyScaleDays,
		},
		SingleSource: maturity.SingleSourceCeiling,
		Build:        version.Info(h.ServiceName),
	}, nil
}
