package tracking

import "time"

// EventKind names one notifiable transition.
type EventKind string

const (
	KindGoal     EventKind = "GOAL"
	KindBTTS     EventKind = "BTTS"
	KindFullTime EventKind = "FULL_TIME"
)

// Side identifies which team a goal event belongs to.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Event is one emitted transition for one participant's fixture.
type Event struct {
	Kind        EventKind
	Participant string
	EventID     string
	HomeTeam    string
	AwayTeam    string
	HomeScore   int
	AwayScore   int
	// ScoringSide is set only for goal events.
	ScoringSide Side
	// Minute is the provider's match clock text at emission, if known.
	Minute string
}

// ObservedState is the per-fixture memory between polls. It carries
// only what transition detection needs; everything else is re-read
// from the catalog each tick.
type ObservedState struct {
	EventID          string    `json:"eventId"`
	LastHomeScore    int       `json:"lastHomeScore"`
	LastAwayScore    int       `json:"lastAwayScore"`
	SeenLive         bool      `json:"seenLive"`
	BTTSNotified     bool      `json:"bttsNotified"`
	FinishedNotified bool      `json:"finishedNotified"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
