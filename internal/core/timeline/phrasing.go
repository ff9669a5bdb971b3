package timeline

import (
	"fmt"
	"strings"

	"skillproof/internal/core/evidence"
	"skillproof/internal/core/provenance"
)

// parts are the pieces of a canonical id a sentence can mention
type parts struct {
	platform provenance.Platform
	host     string
	id       string
	repo     string // owner/repo[/path]
	ref      string
	name     string // package name or deployment slug
	version  string
}

func partsOf(d provenance.Detected) parts {
	p := parts{platform: d.Platform, host: d.Host, id: d.ID()}
	switch d.Platform {
	case provenance.PlatformSourceControl:
		p.repo, p.ref = splitVersion(p.id)
	case provenance.PlatformRegistry:
		p.name, p.version = splitVersion(p.id)
	case provenance.PlatformDeployment:
		p.name = p.id
	}
	return p
}

// splitVersion splits "name@version" on the last '@' that is not a scope marker
func splitVersion(id string) (string, string) {
	if i := strings.LastIndex(id, "@"); i > 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}

func short(ref string) string {
	if len(ref) > 7 && strings.Trim(strings.ToLower(ref), "0123456789abcdef") == "" {
		return ref[:7]
	}
	return ref
}

// object names the proof in a confident sentence
func (p parts) object() string {
	switch p.platform {
	case provenance.PlatformSourceControl:
		if p.ref != "" {
			return p.repo + " at " + short(p.ref)
		}
		return p.repo
	case provenance.PlatformRegistry:
		if p.version != "" {
			return p.name + " " + p.version
		}
		return p.name
	case provenance.PlatformDeployment:
		return "build " + p.name + " on " + p.host
	case provenance.PlatformHash:
		return "artifact " + short(p.id)
	}
	if p.host != "" {
		return p.host
	}
	return "a reference"
}

// confident phrasing for references that pin one immutable artifact
func confident(k evidence.Kind, p parts, skill string) string {
	switch k {
	case evidence.KindCommit:
		if p.platform == provenance.PlatformSourceControl && p.ref != "" {
			return fmt.Sprintf("Committed %s to %s for %s", short(p.ref), p.repo, skill)
		}
		if p.platform == provenance.PlatformSourceControl {
			return fmt.Sprintf("Contributed to %s for %s", p.repo, skill)
		}
		return fmt.Sprintf("Committed %s for %s", p.object(), skill)
	case evidence.KindPackage:
		if p.platform == provenance.PlatformRegistry && p.version != "" {
			return fmt.Sprintf("Published version %s of package %s for %s", p.version, p.name, skill)
		}
		return fmt.Sprintf("Published %s for %s", p.object(), skill)
	case evidence.KindDeployment:
		return fmt.Sprintf("Deployed %s using %s", p.object(), skill)
	case evidence.KindDocument:
		return fmt.Sprintf("Documented %s in %s", skill, p.object())
	case evidence.KindLink:
		return fmt.Sprintf("Linked %s as proof of %s", p.object(), skill)
	}
	return fmt.Sprintf("Claimed experience with %s, referencing %s", skill, p.object())
}

// hedged phrasing for mutable, unverifiable or unrecognised references
func hedged(k evidence.Kind, p parts, skill string) string {
	switch k {
	case evidence.KindCommit:
		if p.repo != "" {
			return fmt.Sprintf("Worked on %s with %s", p.repo, skill)
		}
		return fmt.Sprintf("Reported code contributions in %s", skill)
	case evidence.KindPackage:
		if p.name != "" {
			return fmt.Sprintf("Released package %s for %s", p.name, skill)
		}
		return fmt.Sprintf("Reported publishing a package for %s", skill)
	case evidence.KindDeployment:
		if p.name != "" {
			return fmt.Sprintf("Shipped %s on %s using %s", p.name, p.host, skill)
		}
		return fmt.Sprintf("Shipped a deployment using %s", skill)
	case evidence.KindDocument:
		return fmt.Sprintf("Wrote about %s", skill)
	case evidence.KindLink:
		return fmt.Sprintf("Added a supporting link for %s", skill)
	}
	return fmt.Sprintf("Self-reported experience with %s", skill)
}
