package models

import (
	"strings"
	"time"
)

// EventType is the fixed enumeration of event categories a movement can be
// linked to.
type EventType string

const (
	EventHajj     EventType = "Hajj"
	EventRamadan  EventType = "Ramadan"
	EventRoyal    EventType = "Royal"
	EventNational EventType = "National"
	EventGeneric  EventType = "Event"
	EventNormal   EventType = "Normal"
)

// ParseEventType maps free-text event categories onto the enum. Anything
// unrecognized (including empty) is treated as normal coverage.
func ParseEventType(s string) EventType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hajj", "pilgrimage":
		return EventHajj
	case "ramadan":
		return EventRamadan
	case "royal":
		return EventRoyal
	case "national", "national day":
		return EventNational
	case "event":
		return EventGeneric
	default:
		return EventNormal
	}
}

// DimEvent represents an operational event a movement may be linked to.
type DimEvent struct {
	EventID   string    `json:"event_id" db:"event_id"`
	Name      string    `json:"name,omitempty" db:"name"`
	Type      EventType `json:"type" db:"type"`
	StartDate time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate   time.Time `json:"end_date,omitempty" db:"end_date"`
}
