package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nvraghu/garage-console/internal/service/dashboard"
	"github.com/nvraghu/garage-console/internal/session"
)

// Scheduler periodically re-runs the dashboard load so the summary
// stays fresh while the console sits open.
type Scheduler struct {
	cron     *cron.Cron
	dash     *dashboard.Aggregator
	sessions *session.Store
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a scheduler firing on the given cron schedule.
func NewScheduler(schedule string, dash *dashboard.Aggregator, sessions *session.Store, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		dash:     dash,
		sessions: sessions,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.refreshDashboard); err != nil {
		s.logger.Error("failed to schedule dashboard refresh", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshDashboard() {
	// No point hammering the API before login.
	if !s.sessions.LoggedIn() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.dash.Load(ctx); err != nil {
		s.logger.Warn("scheduled dashboard refresh failed", zap.Error(err))
	}
}
