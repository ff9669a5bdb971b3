package provenance

// Classification extends a detection with whether the proof can be checked independently
type Classification struct {
	Detected
	Checkable bool   `json:"checkable"`
	Reason    string `json:"reason"`
}

// Classify detects ref and reports whether an outside party could check it
func Classify(ref string) Classification { return std.Classify(ref) }

// Classify detects ref with d and reports whether an outside party could check it
func (d *Detector) Classify(ref string) Classification {
	det := d.Detect(ref)
	c := Classification{Detected: det}
	switch {
	case det.Platform == PlatformNone:
		c.Reason = "reference is empty or not recognised"
	case det.CanonicalID == nil:
		c.Reason = "no stable identifier to check against"
	case det.Platform == PlatformSourceControl:
		c.Checkable, c.Reason = true, "repository content can be fetched from the forge"
	case det.Platform == PlatformRegistry:
		c.Checkable, c.Reason = true, "package metadata is public on the registry"
	case det.Platform == PlatformHash:
		c.Checkable, c.Reason = true, "content hash can be compared against the artifact"
	case det.Platform == PlatformDeployment:
		c.Reason = "deployments are mutable and cannot be tied to an author"
	default:
		c.Reason = "platform offers no independent check"
	}
	return c
}
