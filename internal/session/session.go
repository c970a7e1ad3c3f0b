// Package session carries the per-run context the dashboard components
// share: a run identifier and the moment the client started, from which the
// uptime readout is derived.
package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTab is the skill filter the dashboard opens on.
const DefaultTab = "active"

// Session is created once at startup and handed to each component,
// replacing the ambient globals a browser page would keep.
type Session struct {
	ID        string
	StartTime time.Time
}

// New creates a session anchored at now.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
	}
}

// Uptime reports how long this client session has been running. Note this
// is the dashboard's own lifetime, not the remote agent's.
func (s *Session) Uptime() time.Duration {
	return time.Since(s.StartTime)
}
