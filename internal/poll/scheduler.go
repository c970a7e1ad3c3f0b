// Package poll runs the dashboard's recurring fetches against the agent:
// health, metrics, and the skill list. Each task has its own cadence and
// its own failure domain; an error in one never delays or suppresses the
// others.
package poll

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/internal/gateway"
	"github.com/taloswatch/taloswatch/internal/session"
	"github.com/taloswatch/taloswatch/internal/view"
)

// Default cadences for the three polling tasks.
const (
	DefaultHealthInterval  = 10 * time.Second
	DefaultMetricsInterval = 5 * time.Second
	DefaultSkillsInterval  = 15 * time.Second
)

// Intervals carries the task cadences. Zero values fall back to defaults.
type Intervals struct {
	Health  time.Duration
	Metrics time.Duration
	Skills  time.Duration
}

func (i Intervals) withDefaults() Intervals {
	if i.Health <= 0 {
		i.Health = DefaultHealthInterval
	}
	if i.Metrics <= 0 {
		i.Metrics = DefaultMetricsInterval
	}
	if i.Skills <= 0 {
		i.Skills = DefaultSkillsInterval
	}
	return i
}

// Scheduler owns the three polling goroutines and the active skill tab.
type Scheduler struct {
	gw        *gateway.Gateway
	sink      view.Sink
	sess      *session.Session
	intervals Intervals
	logger    *zap.Logger

	mu  sync.Mutex
	tab string

	// kick carries out-of-band skill fetch requests (tab switches,
	// post-mutation refreshes) into the skills task without disturbing
	// its ticker.
	kick chan string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler opening on the default skill tab.
func NewScheduler(gw *gateway.Gateway, sink view.Sink, sess *session.Session, intervals Intervals, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		gw:        gw,
		sink:      sink,
		sess:      sess,
		intervals: intervals.withDefaults(),
		logger:    logger,
		tab:       session.DefaultTab,
		kick:      make(chan string, 4),
	}
}

// Start launches the three tasks. Each fires once immediately so the
// initial view is populated without waiting a full period.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.task(ctx, s.intervals.Health, s.pollHealth)
	s.task(ctx, s.intervals.Metrics, s.pollMetrics)
	s.skillsTask(ctx)
}

// Stop signals every task to stop and waits for them.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// CurrentTab reports the active skill filter.
func (s *Scheduler) CurrentTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// SetTab switches the active skill filter and triggers an immediate fetch
// for it. The recurring cadence is left untouched: the next periodic fetch
// still fires on its original schedule.
func (s *Scheduler) SetTab(tab string) {
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
	s.requestSkills(tab)
}

// RefreshSkills triggers an immediate out-of-band fetch for the current
// tab. Used after skill mutations to resynchronize to ground truth.
func (s *Scheduler) RefreshSkills() {
	s.requestSkills(s.CurrentTab())
}

func (s *Scheduler) requestSkills(tab string) {
	select {
	case s.kick <- tab:
	default:
		// A fetch for some tab is already queued; the skills task will
		// land on ground truth shortly either way.
		s.logger.Debug("skills refresh dropped, queue full", zap.String("tab", tab))
	}
}

// task runs fn once immediately and then on every tick until the context
// ends. fn owns its errors; nothing escapes the goroutine.
func (s *Scheduler) task(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		fn(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
}

// skillsTask is the recurring skills fetch plus the out-of-band kick
// channel. Kicked fetches use the requested tab and do not reset the
// ticker.
func (s *Scheduler) skillsTask(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.intervals.Skills)
		defer ticker.Stop()

		s.pollSkills(ctx, s.CurrentTab())

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.pollSkills(ctx, s.CurrentTab())
			case tab := <-s.kick:
				s.pollSkills(ctx, tab)
			}
		}
	}()
}
