// Package registry confirms that packages named by proof references are published
package registry

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skillproof/internal/core/provenance"
	perr "skillproof/internal/platform/errors"
	"skillproof/internal/platform/logger"
)

const (
	defaultNPM     = "https://registry.npmjs.org"
	defaultPyPI    = "https://pypi.org"
	defaultTimeout = 10 * time.Second
	defaultUA      = "skillproof-verify"
)

// Options configures the Probe
type Options struct {
	NPMBaseURL  string
	PyPIBaseURL string
	UserAgent   string
	Timeout     time.Duration
}

// Probe answers package_registry references for the npm and PyPI ecosystems
type Probe struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewProbe builds a Probe with defaults filled in
func NewProbe(o Options) *Probe {
	if o.NPMBaseURL == "" {
		o.NPMBaseURL = defaultNPM
	}
	if o.PyPIBaseURL == "" {
		o.PyPIBaseURL = defaultPyPI
	}
	o.NPMBaseURL = strings.TrimRight(o.NPMBaseURL, "/")
	o.PyPIBaseURL = strings.TrimRight(o.PyPIBaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Probe{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("registry"),
	}
}

// Supports reports whether d names a package in a registry this probe can query
func (p *Probe) Supports(d provenance.Detected) bool {
	if d.Platform != provenance.PlatformRegistry || d.ID() == "" {
		return false
	}
	return d.Host == provenance.EcosystemNPM || d.Host == provenance.EcosystemPyPI
}

// Check asks the registry for the package, and the version when one is pinned.
// Returns (exists, public_url, err)
func (p *Probe) Check(ctx context.Context, d provenance.Detected) (bool, string, error) {
	name, version := splitVersion(d.ID())
	var api, public string
	switch d.Host {
	case provenance.EcosystemNPM:
		api = p.opts.NPMBaseURL + "/" + npmPath(name)
		public = "https://www.npmjs.com/package/" + name
		if version != "" {
			api += "/" + url.PathEscape(version)
			public += "/v/" + version
		}
	case provenance.EcosystemPyPI:
		api = p.opts.PyPIBaseURL + "/pypi/" + url.PathEscape(name)
		public = "https://pypi.org/project/" + name + "/"
		if version != "" {
			api += "/" + url.PathEscape(version)
			public += version + "/"
		}
		api += "/json"
	default:
		return false, "", nil
	}

	found, err := p.exists(ctx, api)
	if err != nil || !found {
		return false, "", err
	}
	return true, public, nil
}

// exists issues a GET and reports whether the document exists
func (p *Probe) exists(ctx context.Context, u string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "registry new request failed")
	}
	req.Header.Set("User-Agent", p.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "registry request failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()
	p.log.Debug().Str("url", u).Int("status", resp.StatusCode).Msg("registry response")

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return false, perr.Newf(perr.ErrorCodeTooManyRequests, "registry rate limited")
	case resp.StatusCode >= 500:
		return false, perr.Newf(perr.ErrorCodeUnavailable, "registry status %d", resp.StatusCode)
	}
	return false, perr.Newf(perr.ErrorCodeUnknown, "registry unexpected status %d", resp.StatusCode)
}

// npmPath escapes the slash of scoped names the way the registry expects
func npmPath(name string) string {
	if scope, rest, ok := strings.Cut(name, "/"); ok && strings.HasPrefix(scope, "@") {
		return scope + "%2F" + url.PathEscape(rest)
	}
	return url.PathEscape(name)
}

// splitVersion splits "name@version", leaving a leading scope marker alone
func splitVersion(id string) (string, string) {
	if i := strings.LastIndex(id, "@"); i > 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}
