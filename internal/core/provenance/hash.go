package provenance

import (
	"net"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var hexRun = regexp.MustCompile(`[0-9A-Fa-f]+`)

type hashProof struct{}

// HashMatcher recognises a sha1 (40) or sha256 (64) hex token anywhere in the reference
func HashMatcher() Matcher { return hashProof{} }

func (hashProof) Name() string { return "hash_proof" }

func (hashProof) Match(r Ref) (Detected, bool) {
	for _, run := range hexRun.FindAllString(r.Cleaned, -1) {
		if len(run) == 40 || len(run) == 64 {
			return detected(PlatformHash, ConfidenceHigh, "", strings.ToLower(run)), true
		}
	}
	return Detected{}, false
}

type genericLink struct{}

// GenericLinkMatcher accepts any remaining http(s) URL with a dotted host or an IP
func GenericLinkMatcher() Matcher { return genericLink{} }

func (genericLink) Name() string { return "generic_link" }

func (genericLink) Match(r Ref) (Detected, bool) {
	if !r.IsURL() || !validHostname(r.Host) {
		return Detected{}, false
	}
	host := r.Host
	if net.ParseIP(host) == nil {
		if site, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
			host = site
		}
	}
	return Detected{Platform: PlatformGenericLink, Confidence: ConfidenceLow, Host: host}, true
}
