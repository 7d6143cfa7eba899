package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the daily practice report on a cron spec evaluated in UTC.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	ctx        context.Context
	cancel     context.CancelFunc
	reportFunc func(ctx context.Context) error
	log        *zap.SugaredLogger
}

func New(spec string, logger *zap.SugaredLogger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		spec:   spec,
		ctx:    ctx,
		cancel: cancel,
		log:    logger,
	}
}

func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

// Start registers the report job. Without a report function it does nothing.
func (s *Scheduler) Start() error {
	if s.reportFunc == nil {
		s.log.Warn("report function not set, scheduler will not generate reports")
		return nil
	}
	if s.spec == "" {
		return errors.New("empty report schedule")
	}
	_, err := s.cron.AddFunc(s.spec, func() {
		s.log.Infow("daily report triggered", "schedule", s.spec)
		if err := s.reportFunc(s.ctx); err != nil {
			s.log.Errorw("daily report failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infow("scheduler started", "schedule", s.spec, "location", "UTC")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
