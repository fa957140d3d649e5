package engine

import "fmt"

// Event categories.
const (
	CategoryColony     = "colony"
	CategorySettlement = "settlement"
	CategoryGovernment = "government"
	CategoryScience    = "science"
	CategoryShip       = "ship"
	CategoryFaction    = "faction"
)

// maxEvents bounds the retained event history.
const maxEvents = 1000

// Event is a notable occurrence in the galaxy.
type Event struct {
	Year        int    `json:"year"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// EventLog keeps the most recent events and the ones raised since the last
// Drain.
type EventLog struct {
	recent  []Event
	pending []Event
}

// Record appends a formatted event.
func (l *EventLog) Record(year int, category, format string, args ...any) {
	e := Event{Year: year, Category: category, Description: fmt.Sprintf(format, args...)}
	l.pending = append(l.pending, e)
	l.recent = append(l.recent, e)
	if len(l.recent) > maxEvents {
		l.recent = l.recent[len(l.recent)-maxEvents:]
	}
}

// Drain returns and clears the events recorded since the previous call.
func (l *EventLog) Drain() []Event {
	out := l.pending
	l.pending = nil
	return out
}

// Recent returns up to the last maxEvents events, oldest first.
func (l *EventLog) Recent() []Event {
	return append([]Event(nil), l.recent...)
}
