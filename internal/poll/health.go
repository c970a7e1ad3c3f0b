package poll

import (
	"context"

	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/pkg/models"
)

// pollHealth maps one health fetch onto the tri-state badge: a failed
// fetch is offline, an ok body is online, anything else is degraded. The
// badge is overwritten wholesale each cycle; prior state never matters.
func (s *Scheduler) pollHealth(ctx context.Context) {
	res, err := s.gw.Get(ctx, "/health")
	if err != nil {
		failuresTotal.WithLabelValues("health").Inc()
		s.logger.Debug("health poll failed", zap.Error(err))
		s.sink.SetStatusBadge(models.HealthOffline)
		return
	}

	// An empty body is as undecodable as a malformed one: both mean the
	// agent produced no readable health report.
	var health models.HealthResponse
	if len(res.Body) == 0 || res.Decode(&health) != nil {
		failuresTotal.WithLabelValues("health").Inc()
		s.sink.SetStatusBadge(models.HealthOffline)
		return
	}

	if health.Status == "ok" {
		s.sink.SetStatusBadge(models.HealthOnline)
	} else {
		s.sink.SetStatusBadge(models.HealthDegraded)
	}
}
