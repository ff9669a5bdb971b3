package provenance

import (
	"strings"
)

// deploySuffixes are private public-suffix domains of hosting platforms.
// Longest first so "up.railway.app" wins over shorter overlaps
var deploySuffixes = []string{
	"up.railway.app",
	"firebaseapp.com",
	"herokuapp.com",
	"onrender.com",
	"railway.app",
	"netlify.app",
	"vercel.app",
	"github.io",
	"pages.dev",
	"fly.dev",
	"web.app",
}

type deployment struct{}

// DeploymentMatcher recognises hosted deployments on platform subdomains
func DeploymentMatcher() Matcher { return deployment{} }

func (deployment) Name() string { return "deployment" }

func (deployment) Match(r Ref) (Detected, bool) {
	if !r.IsURL() {
		return Detected{}, false
	}
	suffix, prefix := splitDeployHost(r.Host)
	if suffix == "" {
		return Detected{}, false
	}
	labels := strings.Split(prefix, ".")
	slug := labels[len(labels)-1]

	// github.io project pages live under the first path segment
	if suffix == "github.io" {
		id := slug
		if len(r.Segments) > 0 {
			id += "/" + fold(r.Segments[0])
		}
		return detected(PlatformDeployment, ConfidenceMedium, suffix, id), true
	}

	for _, l := range labels {
		if isBuildLabel(l) {
			return detected(PlatformDeployment, ConfidenceHigh, suffix, prefix), true
		}
	}
	return detected(PlatformDeployment, ConfidenceMedium, suffix, slug), true
}

// splitDeployHost returns the matched platform suffix and the labels in front of it
func splitDeployHost(host string) (suffix, prefix string) {
	for _, s := range deploySuffixes {
		if strings.HasSuffix(host, "."+s) {
			p := strings.TrimSuffix(host, "."+s)
			if p == "" {
				return "", ""
			}
			return s, p
		}
	}
	return "", ""
}

// isBuildLabel reports whether a host label pins one immutable build:
// a Netlify "<24 hex>--site" deploy id or any dash part that is a hex run of 7+ with a digit
func isBuildLabel(l string) bool {
	if head, _, ok := strings.Cut(l, "--"); ok && len(head) == 24 && isHex(head) {
		return true
	}
	for _, part := range strings.Split(l, "-") {
		if len(part) >= 7 && isHex(part) && hasDigit(part) {
			return true
		}
	}
	return false
}
