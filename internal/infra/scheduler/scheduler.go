package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/unihaven/backend/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReconcileScheduler triggers a reconciliation pass on a fixed interval.
// If a pass is still running when the next tick fires, the tick is
// skipped rather than overlapped, and each pass is bounded by a timeout
// so a stuck database call cannot wedge the scheduler.
type ReconcileScheduler struct {
	cronEngine  *cron.Cron
	reconciler  app.Reconciler
	logger      *logrus.Logger
	interval    time.Duration
	passTimeout time.Duration
}

func NewReconcileScheduler(
	reconciler app.Reconciler,
	logger *logrus.Logger,
	interval time.Duration,
	passTimeout time.Duration,
) *ReconcileScheduler {
	return &ReconcileScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
		),
		reconciler:  reconciler,
		logger:      logger,
		interval:    interval,
		passTimeout: passTimeout,
	}
}

func (s *ReconcileScheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cronEngine.AddFunc(spec, s.runPass); err != nil {
		return fmt.Errorf("could not add reconciliation cron job: %w", err)
	}
	s.cronEngine.Start()
	s.logger.WithField("interval", s.interval.String()).Info("Reconciliation scheduler started")
	return nil
}

func (s *ReconcileScheduler) runPass() {
	ctx, cancel := context.WithTimeout(context.Background(), s.passTimeout)
	defer cancel()

	if _, err := s.reconciler.RunPass(ctx); err != nil {
		s.logger.WithError(err).Error("Scheduled reconciliation pass reported errors")
	}
}

// Stop halts the cron engine and waits for a running pass to finish.
func (s *ReconcileScheduler) Stop() {
	s.logger.Info("Stopping reconciliation scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Reconciliation scheduler gracefully stopped")
}
