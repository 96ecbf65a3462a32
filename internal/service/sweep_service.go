package service

import (
	"context"
	"fmt"
	"time"

	"milk-platform-be/internal/pkg/logger"

	"github.com/go-co-op/gocron/v2"
)

const sweepTimeout = 2 * time.Minute

// ISweepScheduler runs the periodic subscription completion job.
type ISweepScheduler interface {
	Start(ctx context.Context) error
	Shutdown() error
}

type sweepScheduler struct {
	scheduler     gocron.Scheduler
	subscriptions ISubscriptionService
	cronExpr      string
	logger        logger.ILogger
}

func NewSweepScheduler(subscriptions ISubscriptionService, cronExpr string, log logger.ILogger) (ISweepScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &sweepScheduler{
		scheduler:     scheduler,
		subscriptions: subscriptions,
		cronExpr:      cronExpr,
		logger:        log,
	}, nil
}

func (s *sweepScheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.NewJob(
		gocron.CronJob(s.cronExpr, false),
		gocron.NewTask(func() { s.sweep(ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.cronExpr, err)
	}
	s.scheduler.Start()
	s.logger.Info("SweepScheduler", "Subscription sweep scheduled", map[string]interface{}{"cron": s.cronExpr})
	return nil
}

func (s *sweepScheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}

func (s *sweepScheduler) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	count, err := s.subscriptions.CompleteExpired(ctx)
	if err != nil {
		s.logger.Error("SweepScheduler", "Subscription sweep failed", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Debug("SweepScheduler", "Subscription sweep finished", map[string]interface{}{"completed": count})
}
