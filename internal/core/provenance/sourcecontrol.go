package provenance

import "strings"

var sourceHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"bitbucket.org": true,
	"codeberg.org":  true,
}

// first path segments that are site pages rather than owners
var reservedOwners = map[string]bool{
	"about": true, "explore": true, "features": true, "marketplace": true,
	"orgs": true, "settings": true, "sponsors": true, "topics": true,
	"login": true, "signup": true, "search": true, "users": true,
}

type sourceControl struct{}

// SourceControlMatcher recognises repository URLs on public forges
func SourceControlMatcher() Matcher { return sourceControl{} }

func (sourceControl) Name() string { return "source_control" }

func (sourceControl) Match(r Ref) (Detected, bool) {
	if !r.IsURL() || !sourceHosts[r.Host] || len(r.Segments) < 2 {
		return Detected{}, false
	}
	owner := fold(r.Segments[0])
	repo := fold(strings.TrimSuffix(r.Segments[1], ".git"))
	if owner == "" || repo == "" || reservedOwners[owner] {
		return Detected{}, false
	}

	ref, path := splitRepoRest(r.Segments[2:])
	id := owner + "/" + repo
	if path != "" {
		id += "/" + path
	}
	if ref != "" {
		id += "@" + ref
	}
	conf := ConfidenceMedium
	if ref != "" || path != "" {
		conf = ConfidenceHigh
	}
	return detected(PlatformSourceControl, conf, r.Host, id), true
}

// splitRepoRest reads the segments after owner/repo into a ref and a path
func splitRepoRest(rest []string) (ref, path string) {
	// gitlab separates repo routes with "/-/"
	if len(rest) > 0 && rest[0] == "-" {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", ""
	}
	switch strings.ToLower(rest[0]) {
	case "commit", "commits":
		if len(rest) > 1 {
			return normRef(rest[1]), ""
		}
		return "", ""
	case "tree", "blob", "src", "raw":
		if len(rest) > 1 {
			return normRef(rest[1]), strings.Join(rest[2:], "/")
		}
		return "", ""
	case "releases":
		if len(rest) > 2 && strings.EqualFold(rest[1], "tag") {
			return rest[2], ""
		}
		return "", "releases"
	case "tags", "tag":
		if len(rest) > 1 {
			return rest[1], ""
		}
		return "", ""
	}
	return "", strings.Join(rest, "/")
}

// normRef folds commit hashes so differently cased submissions dedupe
func normRef(s string) string {
	if len(s) >= 7 && isHex(s) {
		return strings.ToLower(s)
	}
	return s
}
