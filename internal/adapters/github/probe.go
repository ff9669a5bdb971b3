package github

import (
	"context"
	"strings"

	"skillproof/internal/core/provenance"
)

// Host is the forge host this probe answers for
const Host = "github.com"

// Probe confirms github.com source control references against the REST API
type Probe struct{ c *Client }

// NewProbe constructs a Probe using the given GitHub client
func NewProbe(c *Client) *Probe { return &Probe{c: c} }

// Supports reports whether d names a github.com repository
func (p *Probe) Supports(d provenance.Detected) bool {
	return d.Platform == provenance.PlatformSourceControl && d.Host == Host && d.ID() != ""
}

// Check resolves the repository and, when the reference pins one, the commit.
// Returns (exists, html_url, err)
func (p *Probe) Check(ctx context.Context, d provenance.Detected) (bool, string, error) {
	owner, repo, ref := splitID(d.ID())
	if owner == "" || repo == "" {
		return false, "", nil
	}
	if ref != "" {
		c, ok, err := p.c.Commit(ctx, owner, repo, ref)
		if err != nil || !ok {
			return false, "", err
		}
		return true, c.HTMLURL, nil
	}
	r, ok, err := p.c.Repo(ctx, owner, repo)
	if err != nil || !ok {
		return false, "", err
	}
	return true, r.HTMLURL, nil
}

// splitID splits "owner/repo[/path][@ref]"
func splitID(id string) (owner, repo, ref string) {
	if i := strings.LastIndex(id, "@"); i > 0 {
		id, ref = id[:i], id[i+1:]
	}
	parts := strings.SplitN(id, "/", 3)
	if len(parts) < 2 {
		return "", "", ""
	}
	return parts[0], parts[1], ref
}
