package domain

import (
	"time"
)

// EventType defines the category of an expansion event.
type EventType string

const (
	EventExpand  EventType = "expand"
	EventDemote  EventType = "demote"
	EventInvalid EventType = "invalid"
)

// ExpansionEvent describes one custom group expansion, demotion or rejected argument set.
type ExpansionEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      EventType         `json:"type"`
	Key       string            `json:"key"`
	Children  int               `json:"children,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// ExpansionHooks defines callbacks for expansion observability. Nil hooks are skipped.
type ExpansionHooks struct {
	OnExpand  func(*ExpansionEvent)
	OnDemote  func(*ExpansionEvent)
	OnInvalid func(*ExpansionEvent)
}

// Merge returns hooks that call h first and then other.
func (h ExpansionHooks) Merge(other ExpansionHooks) ExpansionHooks {
	chain := func(a, b func(*ExpansionEvent)) func(*ExpansionEvent) {
		switch {
		case a == nil:
			return b
		case b == nil:
			return a
		}
		return func(e *ExpansionEvent) {
			a(e)
			b(e)
		}
	}
	return ExpansionHooks{
		OnExpand:  chain(h.OnExpand, other.OnExpand),
		OnDemote:  chain(h.OnDemote, other.OnDemote),
		OnInvalid: chain(h.OnInvalid, other.OnInvalid),
	}
}
