package domain

import "time"

// Match is one ingested combat log and the events parsed from it.
// Events keep the order of their source lines.
type Match struct {
	ID         string
	Events     []Event
	IngestedAt time.Time
}

// EventsByActor returns the events whose actor equals actor, in order
func (m *Match) EventsByActor(actor string) []Event {
	var out []Event
	for _, e := range m.Events {
		if e.EventHeader().Actor == actor {
			out = append(out, e)
		}
	}
	return out
}
