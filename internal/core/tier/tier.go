// Package tier maps a 0-100 credibility score onto a discrete tier
package tier

import (
	"fmt"
	"strings"
)

// Tier is an ordered credibility tier; larger is stronger
type Tier uint8

const (
	Unverified Tier = iota
	Emerging
	Proven
	Expert
)

// Inclusive lower bounds of each tier above Unverified
const (
	EmergingFloor = 25
	ProvenFloor   = 55
	ExpertFloor   = 80
)

var names = [...]string{"Unverified", "Emerging", "Proven", "Expert"}

// FromScore returns the tier for score; out of range values are clamped
func FromScore(score int) Tier {
	switch {
	case score >= ExpertFloor:
		return Expert
	case score >= ProvenFloor:
		return Proven
	case score >= EmergingFloor:
		return Emerging
	}
	return Unverified
}

// AtLeast reports whether t ranks at or above o
func (t Tier) AtLeast(o Tier) bool { return t >= o }

func (t Tier) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// Parse reads a tier name case-insensitively
func Parse(s string) (Tier, error) {
	for i, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Tier(i), nil
		}
	}
	return Unverified, fmt.Errorf("unknown tier %q", s)
}

// MarshalText encodes the tier name
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a tier name
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
