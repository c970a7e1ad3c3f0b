package poll

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/pkg/models"
)

// pollSkills fetches the full skill list for one tab and replaces the
// rendered list wholesale. Any failure is a no-op: the previous list stays.
func (s *Scheduler) pollSkills(ctx context.Context, tab string) {
	res, err := s.gw.Get(ctx, "/skills?state="+url.QueryEscape(tab))
	if err != nil {
		failuresTotal.WithLabelValues("skills").Inc()
		s.logger.Debug("skills poll failed", zap.String("tab", tab), zap.Error(err))
		return
	}
	if !res.OK() {
		return
	}

	var skills []models.Skill
	if err := res.Decode(&skills); err != nil {
		failuresTotal.WithLabelValues("skills").Inc()
		return
	}

	s.sink.SetSkills(tab, skills)
}
