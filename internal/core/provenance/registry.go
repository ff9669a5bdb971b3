package provenance

import (
	"net/url"
	"regexp"
	"strings"
)

// Registry ecosystems used as the Host of registry detections
const (
	EcosystemNPM      = "npmjs.com"
	EcosystemPyPI     = "pypi.org"
	EcosystemCrates   = "crates.io"
	EcosystemGo       = "pkg.go.dev"
	EcosystemRubyGems = "rubygems.org"
	EcosystemNuGet    = "nuget.org"
)

// purl types mapped onto the registry host they live on
var purlTypes = map[string]string{
	"npm":    EcosystemNPM,
	"pypi":   EcosystemPyPI,
	"cargo":  EcosystemCrates,
	"golang": EcosystemGo,
	"gem":    EcosystemRubyGems,
	"nuget":  EcosystemNuGet,
}

type pkgRef struct {
	ecosystem string
	name      string
	version   string
}

type registry struct{}

// RegistryMatcher recognises package pages on public registries and purl strings
func RegistryMatcher() Matcher { return registry{} }

func (registry) Name() string { return "package_registry" }

func (registry) Match(r Ref) (Detected, bool) {
	var (
		p  pkgRef
		ok bool
	)
	if strings.HasPrefix(strings.ToLower(r.Cleaned), "pkg:") {
		p, ok = parsePURL(r.Raw)
	} else if r.IsURL() {
		p, ok = parseRegistryURL(r.Host, r.Segments)
	}
	if !ok || p.name == "" {
		return Detected{}, false
	}
	if p.version != "" {
		return detected(PlatformRegistry, ConfidenceHigh, p.ecosystem, p.name+"@"+p.version), true
	}
	return detected(PlatformRegistry, ConfidenceMedium, p.ecosystem, p.name), true
}

func parseRegistryURL(host string, seg []string) (pkgRef, bool) {
	at := func(i int) string {
		if i < len(seg) {
			return seg[i]
		}
		return ""
	}
	switch host {
	case "npmjs.com":
		if at(0) != "package" {
			return pkgRef{}, false
		}
		name, n := npmName(seg[1:])
		ver := ""
		if at(1+n) == "v" {
			ver = at(2 + n)
		}
		return pkgRef{EcosystemNPM, name, ver}, true
	case "registry.npmjs.org":
		name, n := npmName(seg)
		return pkgRef{EcosystemNPM, name, at(n)}, true
	case "pypi.org":
		if at(0) != "project" {
			return pkgRef{}, false
		}
		return pkgRef{EcosystemPyPI, pep503(at(1)), at(2)}, true
	case "crates.io":
		if at(0) != "crates" {
			return pkgRef{}, false
		}
		return pkgRef{EcosystemCrates, fold(at(1)), at(2)}, true
	case "pkg.go.dev":
		if len(seg) == 0 {
			return pkgRef{}, false
		}
		path := strings.Join(seg, "/")
		name, ver, _ := strings.Cut(path, "@")
		return pkgRef{EcosystemGo, name, ver}, true
	case "rubygems.org":
		if at(0) != "gems" {
			return pkgRef{}, false
		}
		ver := ""
		if at(2) == "versions" {
			ver = at(3)
		}
		return pkgRef{EcosystemRubyGems, fold(at(1)), ver}, true
	case "nuget.org":
		if at(0) != "packages" {
			return pkgRef{}, false
		}
		return pkgRef{EcosystemNuGet, fold(at(1)), at(2)}, true
	}
	return pkgRef{}, false
}

// npmName reads a possibly scoped package name and reports how many segments it used
func npmName(seg []string) (string, int) {
	if len(seg) == 0 {
		return "", 0
	}
	if strings.HasPrefix(seg[0], "@") && len(seg) > 1 {
		return fold(seg[0] + "/" + seg[1]), 2
	}
	return fold(seg[0]), 1
}

var pep503Sep = regexp.MustCompile(`[-_.]+`)

// pep503 normalises a Python distribution name
func pep503(name string) string {
	return pep503Sep.ReplaceAllString(fold(name), "-")
}

// parsePURL reads pkg:type/namespace/name@version, qualifiers and subpath ignored
func parsePURL(raw string) (pkgRef, bool) {
	s := raw[len("pkg:"):]
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	typ, rest, ok := strings.Cut(strings.TrimLeft(s, "/"), "/")
	if !ok || rest == "" {
		return pkgRef{}, false
	}
	typ = fold(typ)
	name, ver := rest, ""
	if i := strings.LastIndex(rest, "@"); i > 0 {
		name, ver = rest[:i], rest[i+1:]
	}
	if dec, err := url.PathUnescape(name); err == nil {
		name = dec
	}
	if dec, err := url.PathUnescape(ver); err == nil {
		ver = dec
	}
	name = strings.Trim(name, "/")
	eco, known := purlTypes[typ]
	if !known {
		eco = "pkg:" + typ
	}
	switch typ {
	case "pypi":
		name = pep503(name)
	case "golang":
	default:
		name = fold(name)
	}
	return pkgRef{eco, name, ver}, name != ""
}
