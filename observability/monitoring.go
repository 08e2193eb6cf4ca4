// Package observability aggregates engine counters for the heartbeat
// report. Counters are atomic so hot paths never contend on a lock.
package observability

import (
	"sync/atomic"
)

type Stats struct {
	CommandsDispatched uint64 `json:"commands_dispatched"`
	EventsFanned       uint64 `json:"events_fanned"`
	EventsDropped      uint64 `json:"events_dropped"`
	MessagesCommitted  uint64 `json:"messages_committed"`
	ActiveSessions     int64  `json:"active_sessions"`
}

type Monitoring struct {
	commandsDispatched atomic.Uint64
	eventsFanned       atomic.Uint64
	eventsDropped      atomic.Uint64
	messagesCommitted  atomic.Uint64
	activeSessions     atomic.Int64
}

func NewMonitoring() *Monitoring {
	return &Monitoring{}
}

func (m *Monitoring) IncrCommands() {
	m.commandsDispatched.Add(1)
}

func (m *Monitoring) IncrFanned() {
	m.eventsFanned.Add(1)
}

func (m *Monitoring) IncrDropped() {
	m.eventsDropped.Add(1)
}

func (m *Monitoring) IncrCommitted() {
	m.messagesCommitted.Add(1)
}

func (m *Monitoring) SessionOpened() {
	m.activeSessions.Add(1)
}

func (m *Monitoring) SessionClosed() {
	m.activeSessions.Add(-1)
}

// GetLatest snapshots all counters at once.
func (m *Monitoring) GetLatest() Stats {
	return Stats{
		CommandsDispatched: m.commandsDispatched.Load(),
		EventsFanned:       m.eventsFanned.Load(),
		EventsDropped:      m.eventsDropped.Load(),
		MessagesCommitted:  m.messagesCommitted.Load(),
		ActiveSessions:     m.activeSessions.Load(),
	}
}
