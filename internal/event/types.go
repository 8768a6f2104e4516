package event

import "time"

// Type classifies a notification event.
type Type string

const (
	TypeMessage      Type = "message"
	TypeAnnouncement Type = "announcement"
	TypeEnrollment   Type = "enrollment"
	TypeGrades       Type = "grades"
	TypeSystem       Type = "system"
)

// Section names an in-app navigation target.
type Section string

const (
	SectionMessages      Section = "messages"
	SectionAnnouncements Section = "announcements"
	SectionEnrollment    Section = "enrollment"
	SectionGrades        Section = "grades"
	SectionDashboard     Section = "dashboard"
)

// Event is a single notification pushed by or fetched from the server.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	SenderID   string    `json:"sender_id,omitempty"`
	SenderName string    `json:"sender_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Read       bool      `json:"read"`
}

// Counts is the server-authoritative unread breakdown. ByType keys are not
// necessarily exhaustive; an absent type counts as zero.
type Counts struct {
	Total  int          `json:"total"`
	ByType map[Type]int `json:"counts"`
}

// Of returns the unread count for a type, treating absence as zero.
func (c Counts) Of(t Type) int {
	if c.ByType == nil {
		return 0
	}
	return c.ByType[t]
}

// Descriptor carries every per-type affordance in one place: icon, color and
// navigation target. Keeping these in a single table (instead of parallel
// switches) means a new type cannot be half-wired.
type Descriptor struct {
	Icon    string
	Color   string
	Section Section
}

var descriptors = map[Type]Descriptor{
	TypeMessage:      {Icon: "envelope", Color: "#3b82f6", Section: SectionMessages},
	TypeAnnouncement: {Icon: "megaphone", Color: "#f59e0b", Section: SectionAnnouncements},
	TypeEnrollment:   {Icon: "clipboard", Color: "#10b981", Section: SectionEnrollment},
	TypeGrades:       {Icon: "chart", Color: "#8b5cf6", Section: SectionGrades},
	TypeSystem:       {Icon: "bell", Color: "#6b7280", Section: SectionDashboard},
}

// Describe returns the descriptor for a type. Unknown types fall back to the
// system descriptor so rendering and navigation never dead-end.
func Describe(t Type) Descriptor {
	if d, ok := descriptors[t]; ok {
		return d
	}
	return descriptors[TypeSystem]
}

// IsValidType checks if the given type is a known event type.
func IsValidType(t Type) bool {
	_, ok := descriptors[t]
	return ok
}

// Types returns all known event types.
func Types() []Type {
	return []Type{TypeMessage, TypeAnnouncement, TypeEnrollment, TypeGrades, TypeSystem}
}
