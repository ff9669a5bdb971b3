package provenance

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
)

// Ref is a proof reference prepared for matching
type Ref struct {
	// Raw is the trimmed input
	Raw string
	// Cleaned is Raw with query, fragment and trailing slashes removed
	Cleaned string
	// URL is set when the input parses as an http(s) URL
	URL *url.URL
	// Host is the case folded host without port or leading "www."
	Host string
	// Segments are the non-empty path segments, case preserved
	Segments []string
}

// Empty reports whether there was anything to classify
func (r Ref) Empty() bool { return r.Raw == "" }

// IsURL reports whether the reference parsed as an http(s) URL with a host
func (r Ref) IsURL() bool { return r.URL != nil && r.Host != "" }

// Prepare trims and normalises a raw reference. It never fails
func Prepare(raw string) Ref {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Ref{}
	}
	r := Ref{Raw: s, Cleaned: clean(s)}

	candidate := r.Cleaned
	if !strings.Contains(candidate, "://") && looksLikeBareHost(candidate) {
		candidate = "https://" + candidate
	}
	if strings.ContainsAny(candidate, " \t\r\n") {
		return r
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return r
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return r
	}
	host := foldHost(u.Hostname())
	if host == "" {
		return r
	}
	r.URL = u
	r.Host = host
	r.Segments = splitPath(u.Path)
	return r
}

// clean strips query, fragment and trailing slashes
func clean(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "/")
}

func foldHost(h string) string {
	h = strings.TrimSuffix(h, ".")
	h = cases.Fold().String(h)
	return strings.TrimPrefix(h, "www.")
}

func fold(s string) string { return cases.Fold().String(s) }

func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// looksLikeBareHost reports whether s starts with a dotted hostname such as "github.com/x"
func looksLikeBareHost(s string) bool {
	first, _, _ := strings.Cut(s, "/")
	if strings.HasPrefix(strings.ToLower(s), "pkg:") {
		return false
	}
	return validHostname(first)
}

func validHostname(h string) bool {
	if h == "" || !strings.Contains(h, ".") || len(h) > 253 {
		return false
	}
	if net.ParseIP(h) != nil {
		return true
	}
	for _, label := range strings.Split(h, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		for _, c := range label {
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			default:
				return false
			}
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
