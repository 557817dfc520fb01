package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mamadbah2/foodboard/internal/config"
	"github.com/mamadbah2/foodboard/internal/repository/mongodb"
	"github.com/mamadbah2/foodboard/internal/repository/sheets"
	"github.com/mamadbah2/foodboard/internal/scheduler"
	"github.com/mamadbah2/foodboard/internal/service/dashboard"
	exportsvc "github.com/mamadbah2/foodboard/internal/service/export"
	"github.com/mamadbah2/foodboard/internal/service/importer"
	"github.com/mamadbah2/foodboard/internal/tui"
	"github.com/mamadbah2/foodboard/pkg/clients/foods"
	"github.com/mamadbah2/foodboard/pkg/logger"
)

func main() {
	envFile := flag.String("env", "", "optional .env file to load before reading the environment")
	flag.Parse()

	if err := run(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "foodboard: %v\n", err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	baseLogger, err := logger.New(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var journal dashboard.Journal
	if cfg.MongoDB.URI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Warn("sync journal disabled", zap.Error(err))
		} else {
			journal = mongoRepo
			defer func() {
				if err := mongoRepo.Close(context.Background()); err != nil {
					baseLogger.Error("failed to close mongodb connection", zap.Error(err))
				}
			}()
			baseLogger.Info("sync journal enabled", zap.String("db", cfg.MongoDB.DBName))
		}
	}

	client := foods.NewClient(cfg.API)
	controller := dashboard.NewController(client, dashboard.NewState(), journal, baseLogger.Named("svc.dashboard"))

	var exporter tui.Exporter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			return fmt.Errorf("init sheets export: %w", err)
		}
		exporter = exportsvc.NewService(sheetsRepo, controller.State(), cfg.Sheets.Range, baseLogger.Named("svc.export"))
	}

	model := tui.New(ctx, controller, controller.State(), exporter, baseLogger.Named("tui"))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	sched := scheduler.NewScheduler(cfg.Dashboard, controller, exporter, baseLogger.Named("scheduler"))
	sched.SetNotifier(func(job string, err error) {
		program.Send(tui.SyncMsg{Source: job, Err: err})
	})
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	if cfg.Import.Dir != "" {
		watcher, err := importer.NewWatcher(cfg.Import.Dir, controller, baseLogger.Named("svc.importer"))
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()

		watcher.SetNotifier(func(res importer.Result, err error) {
			program.Send(tui.SyncMsg{
				Source: "import " + res.File,
				Detail: fmt.Sprintf("%s imported: %d added, %d failed", res.File, res.Added, res.Failed),
				Err:    err,
			})
		})
		go watcher.Run(ctx)
		baseLogger.Info("watching import folder", zap.String("dir", cfg.Import.Dir))
	}

	baseLogger.Info("dashboard starting", zap.String("api", cfg.API.BaseURL))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run dashboard: %w", err)
	}
	baseLogger.Info("dashboard stopped")
	return nil
}
