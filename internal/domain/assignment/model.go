package assignment

import "strings"

// Assignment binds one participant to the fixture they are tracking.
// An empty EventID means the participant is currently unassigned.
type Assignment struct {
	Participant string `json:"participant" db:"participant" validate:"required"`
	EventID     string `json:"eventId" db:"event_id"`
}

func NormalizeParticipant(name string) string {
	return strings.TrimSpace(name)
}
