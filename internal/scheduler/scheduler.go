package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/foodboard/internal/config"
)

const (
	JobRefresh = "refresh"
	JobExport  = "export"

	jobTimeout = 2 * time.Minute
)

// Loader reloads the dashboard from the foods API.
type Loader interface {
	Load(ctx context.Context) error
}

// Exporter publishes the dashboard's menu.
type Exporter interface {
	Export(ctx context.Context) (int, error)
}

// Notifier is told about every finished job so the UI can redraw.
type Notifier func(job string, err error)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	loader   Loader
	exporter Exporter
	cfg      config.DashboardConfig
	notify   Notifier
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. exporter may be nil.
func NewScheduler(cfg config.DashboardConfig, loader Loader, exporter Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		loader:   loader,
		exporter: exporter,
		cfg:      cfg,
		notify:   func(string, error) {},
		logger:   logger,
	}
}

// SetNotifier replaces the job completion callback. Call before Start.
func (s *Scheduler) SetNotifier(n Notifier) {
	if n != nil {
		s.notify = n
	}
}

// Start registers the configured jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("refresh", s.cfg.RefreshSchedule),
		zap.String("export", s.cfg.ExportSchedule))

	if s.cfg.RefreshSchedule != "" && s.loader != nil {
		if _, err := s.cron.AddFunc(s.cfg.RefreshSchedule, s.refresh); err != nil {
			return fmt.Errorf("schedule refresh %q: %w", s.cfg.RefreshSchedule, err)
		}
	}

	if s.cfg.ExportSchedule != "" && s.exporter != nil {
		if _, err := s.cron.AddFunc(s.cfg.ExportSchedule, s.export); err != nil {
			return fmt.Errorf("schedule export %q: %w", s.cfg.ExportSchedule, err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Jobs returns how many jobs are registered.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error("scheduled refresh failed", zap.Error(err))
	} else {
		s.logger.Debug("scheduled refresh done")
	}
	s.notify(JobRefresh, err)
}

func (s *Scheduler) export() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.exporter.Export(ctx)
	if err != nil {
		s.logger.Error("scheduled export failed", zap.Error(err))
	} else {
		s.logger.Info("scheduled export done", zap.Int("foods", n))
	}
	s.notify(JobExport, err)
}
