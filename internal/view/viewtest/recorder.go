// Package viewtest provides a recording view.Sink for use in tests across
// the sync layer packages.
package viewtest

import (
	"sync"
	"time"

	"github.com/taloswatch/taloswatch/internal/view"
	"github.com/taloswatch/taloswatch/pkg/models"
)

// Recorder captures every slot write so tests can assert on exactly what a
// component rendered. Safe for concurrent use.
type Recorder struct {
	mu sync.Mutex

	Badges      []models.HealthState
	Uptimes     []time.Duration
	VRAMStates  []string
	TokenUsages [][2]int64
	Vectors     []int64
	Counts      [][2]int
	Logs        []models.LogLine
	Trims       []int
	Chat        []models.ChatMessage
	SendStates  []bool
	SkillTabs   []string
	SkillLists  [][]models.Skill
}

var _ view.Sink = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) SetStatusBadge(state models.HealthState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Badges = append(r.Badges, state)
}

func (r *Recorder) SetUptime(elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Uptimes = append(r.Uptimes, elapsed)
}

func (r *Recorder) SetVRAMState(state string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.VRAMStates = append(r.VRAMStates, state)
}

func (r *Recorder) SetTokenUsage(used, budget int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.TokenUsages = append(r.TokenUsages, [2]int64{used, budget})
}

func (r *Recorder) SetVectorCount(count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Vectors = append(r.Vectors, count)
}

func (r *Recorder) SetSkillCounts(active, quarantine int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Counts = append(r.Counts, [2]int{active, quarantine})
}

func (r *Recorder) AppendLog(line models.LogLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Logs = append(r.Logs, line)
}

func (r *Recorder) TrimLog(max int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Trims = append(r.Trims, max)
}

func (r *Recorder) AppendChat(msg models.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Chat = append(r.Chat, msg)
}

func (r *Recorder) SetSendEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SendStates = append(r.SendStates, enabled)
}

func (r *Recorder) SetSkills(tab string, skills []models.Skill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SkillTabs = append(r.SkillTabs, tab)
	r.SkillLists = append(r.SkillLists, skills)
}

// LastBadge returns the most recent status badge write, or "" if none.
func (r *Recorder) LastBadge() models.HealthState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Badges) == 0 {
		return ""
	}
	return r.Badges[len(r.Badges)-1]
}

// LogLines returns the appended log lines in order.
func (r *Recorder) LogLines() []models.LogLine {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.LogLine, len(r.Logs))
	copy(out, r.Logs)
	return out
}

// TrimCalls returns the TrimLog arguments in call order.
func (r *Recorder) TrimCalls() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.Trims))
	copy(out, r.Trims)
	return out
}

// ChatTexts returns the transcript texts in append order.
func (r *Recorder) ChatTexts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Chat))
	for i, m := range r.Chat {
		out[i] = m.Text
	}
	return out
}
