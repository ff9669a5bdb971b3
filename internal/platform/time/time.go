// Package time holds small helpers for optional timestamps
package time

import "time"

// Ptr returns &t, or nil for the zero time so nullable columns stay null
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Value dereferences p, returning the zero time for nil
func Value(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}
