package models

// MovementFilter narrows the fact set before aggregation. Every field is
// optional; a zero value imposes no constraint. Fields combine as a
// conjunction.
type MovementFilter struct {
	Year         int    `form:"year"`         // Calendar year of MovedAt
	Region       string `form:"region"`       // Destination region
	Vendor       string `form:"vendor"`       // Cow vendor
	MovementType string `form:"movementType"` // Full, Half, Zero
	EventType    string `form:"eventType"`    // Hajj, Ramadan, Royal, National, Event, Normal
}

// IsZero reports whether the filter imposes no constraint at all.
func (f MovementFilter) IsZero() bool {
	return f.Year == 0 && f.Region == "" && f.Vendor == "" &&
		f.MovementType == "" && f.EventType == ""
}
