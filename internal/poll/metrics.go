package poll

import (
	"context"

	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/pkg/models"
)

// TokenBudget is the fixed daily token allowance rendered next to the
// consumption count.
const TokenBudget = 50000

// pollMetrics fetches one metrics snapshot and replaces the rendered
// values wholesale. Any failure keeps the previous snapshot fully intact:
// no partial overwrite, no error surfaced. The uptime readout is recomputed
// every tick regardless of the fetch outcome.
func (s *Scheduler) pollMetrics(ctx context.Context) {
	s.sink.SetUptime(s.sess.Uptime())

	res, err := s.gw.Get(ctx, "/metrics")
	if err != nil {
		failuresTotal.WithLabelValues("metrics").Inc()
		s.logger.Debug("metrics poll failed", zap.Error(err))
		return
	}
	if !res.OK() {
		return
	}

	var snap models.MetricsSnapshot
	if err := res.Decode(&snap); err != nil {
		failuresTotal.WithLabelValues("metrics").Inc()
		return
	}

	vram := ""
	if snap.VRAM != nil {
		vram = snap.VRAM.State
	}
	var tokens int64
	if snap.Gemini != nil {
		tokens = snap.Gemini.TokensUsedToday
	}
	var vectors int64
	if snap.TotalVectors != nil {
		vectors = *snap.TotalVectors
	}
	var active, quarantine int
	if snap.Skills != nil {
		active = snap.Skills.Active
		quarantine = snap.Skills.Quarantine
	}

	s.sink.SetVRAMState(vram)
	s.sink.SetTokenUsage(tokens, TokenBudget)
	s.sink.SetVectorCount(vectors)
	s.sink.SetSkillCounts(active, quarantine)
}
