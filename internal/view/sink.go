// Package view defines the projection target the sync layer writes into.
// The core never touches presentation directly: every component renders by
// calling one of the named-slot methods below, and a host supplies the
// implementation (the terminal sink here, or a recording fake in tests).
package view

import (
	"fmt"
	"time"

	"github.com/taloswatch/taloswatch/pkg/models"
)

// Sink receives every view mutation the sync layer produces. One method per
// named slot; each slot is only ever written by a single component, so
// implementations need no cross-slot consistency beyond serializing writes.
type Sink interface {
	// SetStatusBadge replaces the health badge wholesale.
	SetStatusBadge(state models.HealthState)

	// SetUptime replaces the uptime readout with the elapsed session time.
	SetUptime(elapsed time.Duration)

	// SetVRAMState replaces the VRAM arbiter readout. An empty state means
	// the field was absent from the snapshot and renders as a placeholder.
	SetVRAMState(state string)

	// SetTokenUsage replaces the token consumption readout.
	SetTokenUsage(used, budget int64)

	// SetVectorCount replaces the memory-store vector count. Zero renders
	// as a placeholder.
	SetVectorCount(count int64)

	// SetSkillCounts replaces the active/quarantine skill tallies.
	SetSkillCounts(active, quarantine int)

	// AppendLog appends one classified line to the log pane.
	AppendLog(line models.LogLine)

	// TrimLog drops the oldest log pane entries beyond max.
	TrimLog(max int)

	// AppendChat appends one entry to the chat transcript.
	AppendChat(msg models.ChatMessage)

	// SetSendEnabled toggles the chat send affordance.
	SetSendEnabled(enabled bool)

	// SetSkills replaces the skill list for the given tab wholesale.
	SetSkills(tab string, skills []models.Skill)
}

// FormatUptime renders an elapsed duration as the dashboard's uptime
// readout, e.g. "UP 01:07:42".
func FormatUptime(elapsed time.Duration) string {
	total := int64(elapsed.Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("UP %02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
