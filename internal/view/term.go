package view

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taloswatch/taloswatch/pkg/models"
)

// placeholder is rendered for metric fields absent from a snapshot.
const placeholder = "—"

// logLineHeight is the nominal rendered height of one log line, used by the
// pane viewport when deciding whether to follow the tail.
const logLineHeight = 16

type termStyles struct {
	badgeOK    lipgloss.Style
	badgeWarn  lipgloss.Style
	badgeError lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style

	logCritical lipgloss.Style
	logError    lipgloss.Style
	logWarn     lipgloss.Style
	logDebug    lipgloss.Style
	logInfo     lipgloss.Style

	chatUser    lipgloss.Style
	chatAgent   lipgloss.Style
	chatBlocked lipgloss.Style

	skillID   lipgloss.Style
	skillMeta lipgloss.Style
}

func newTermStyles() termStyles {
	green := lipgloss.Color("10")
	yellow := lipgloss.Color("11")
	red := lipgloss.Color("9")
	cyan := lipgloss.Color("14")
	gray := lipgloss.Color("8")

	return termStyles{
		badgeOK:    lipgloss.NewStyle().Foreground(green).Bold(true),
		badgeWarn:  lipgloss.NewStyle().Foreground(yellow).Bold(true),
		badgeError: lipgloss.NewStyle().Foreground(red).Bold(true),
		label:      lipgloss.NewStyle().Foreground(gray),
		value:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),

		logCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(red).Bold(true),
		logError:    lipgloss.NewStyle().Foreground(red),
		logWarn:     lipgloss.NewStyle().Foreground(yellow),
		logDebug:    lipgloss.NewStyle().Foreground(gray),
		logInfo:     lipgloss.NewStyle(),

		chatUser:    lipgloss.NewStyle().Foreground(cyan).Bold(true),
		chatAgent:   lipgloss.NewStyle(),
		chatBlocked: lipgloss.NewStyle().Foreground(red).Italic(true),

		skillID:   lipgloss.NewStyle().Foreground(cyan),
		skillMeta: lipgloss.NewStyle().Foreground(gray),
	}
}

// TermSink renders the dashboard slots as styled lines on a terminal
// writer. All writes are serialized through one mutex since every polling
// task and the log channel render concurrently.
type TermSink struct {
	mu     sync.Mutex
	w      io.Writer
	styles termStyles
	pane   Viewport
}

var _ Sink = (*TermSink)(nil)

// NewTermSink creates a terminal sink writing to w.
func NewTermSink(w io.Writer) *TermSink {
	return &TermSink{
		w:      w,
		styles: newTermStyles(),
		// A fresh pane is at its own bottom, so the tail is followed
		// until the operator scrolls back.
		pane: Viewport{ClientHeight: 24 * logLineHeight},
	}
}

func (t *TermSink) SetStatusBadge(state models.HealthState) {
	var s lipgloss.Style
	switch state {
	case models.HealthOnline:
		s = t.styles.badgeOK
	case models.HealthDegraded:
		s = t.styles.badgeWarn
	default:
		s = t.styles.badgeError
	}
	t.line("status", s.Render(strings.ToUpper(string(state))))
}

func (t *TermSink) SetUptime(elapsed time.Duration) {
	t.line("uptime", t.styles.value.Render(FormatUptime(elapsed)))
}

func (t *TermSink) SetVRAMState(state string) {
	if state == "" {
		state = placeholder
	}
	t.line("vram", t.styles.value.Render(state))
}

func (t *TermSink) SetTokenUsage(used, budget int64) {
	t.line("tokens", t.styles.value.Render(fmt.Sprintf("%d/%d", used, budget)))
}

func (t *TermSink) SetVectorCount(count int64) {
	v := placeholder
	if count != 0 {
		v = fmt.Sprintf("%d", count)
	}
	t.line("vectors", t.styles.value.Render(v))
}

func (t *TermSink) SetSkillCounts(active, quarantine int) {
	t.line("skills", t.styles.value.Render(fmt.Sprintf("%dA / %dQ", active, quarantine)))
}

func (t *TermSink) AppendLog(line models.LogLine) {
	t.mu.Lock()
	defer t.mu.Unlock()
	// Only emit when the pane is following the tail; lines appended while
	// the operator has scrolled back accumulate silently.
	if t.pane.Append(logLineHeight) {
		fmt.Fprintln(t.w, t.logStyle(line.Severity).Render(line.Raw))
	}
}

func (t *TermSink) TrimLog(max int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	over := t.pane.ScrollHeight - float64(max)*logLineHeight
	if over > 0 {
		t.pane.Trim(over)
	}
}

func (t *TermSink) AppendChat(msg models.ChatMessage) {
	var s lipgloss.Style
	switch msg.Role {
	case models.RoleUser:
		s = t.styles.chatUser
	case models.RoleBlocked:
		s = t.styles.chatBlocked
	default:
		s = t.styles.chatAgent
	}
	t.line("chat", s.Render(fmt.Sprintf("[%s] %s", msg.Role, msg.Text)))
}

func (t *TermSink) SetSendEnabled(enabled bool) {
	// The terminal host reads input line by line; there is no affordance
	// to grey out, so this is a no-op.
	_ = enabled
}

func (t *TermSink) SetSkills(tab string, skills []models.Skill) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(skills) == 0 {
		fmt.Fprintf(t.w, "%s %s\n", t.styles.label.Render("skills["+tab+"]"), t.styles.skillMeta.Render("No skills"))
		return
	}
	for _, s := range skills {
		lang := s.Code.Language
		if lang == "" {
			lang = "?"
		}
		fmt.Fprintf(t.w, "%s %s %s\n",
			t.styles.label.Render("skills["+tab+"]"),
			t.styles.skillID.Render(s.SkillID),
			t.styles.skillMeta.Render(fmt.Sprintf("v%s · %s · %s", s.Version, lang, s.QuarantineState)),
		)
	}
}

func (t *TermSink) line(slot, rendered string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s\n", t.styles.label.Render(slot+":"), rendered)
}

func (t *TermSink) logStyle(sev models.Severity) lipgloss.Style {
	switch sev {
	case models.SeverityCritical:
		return t.styles.logCritical
	case models.SeverityError:
		return t.styles.logError
	case models.SeverityWarn:
		return t.styles.logWarn
	case models.SeverityDebug:
		return t.styles.logDebug
	default:
		return t.styles.logInfo
	}
}
