package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/cli"
	"github.com/alexanderramin/grindstone/internal/config"
	"github.com/alexanderramin/grindstone/internal/db"
	"github.com/alexanderramin/grindstone/internal/engine"
	"github.com/alexanderramin/grindstone/internal/repository"
	"github.com/alexanderramin/grindstone/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		if engine.IsLocked(err) {
			fmt.Fprintln(os.Stderr, engine.LockedMessage)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLog(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	domainRepo := repository.NewSQLiteDomainRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	historyRepo := repository.NewSQLiteHistoryRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	cal := calendar.New(calendar.SystemClock{}, loc)

	observers := []service.UseCaseObserver{service.NewSlogUseCaseObserver(logger)}
	if cfg.Metrics.Enabled {
		observers = append(observers, service.MetricsUseCaseObserver{})
	}

	// Wire services
	historySvc := service.NewHistoryService(historyRepo, activityRepo, cfg.History.BackfillDays, observers...)
	settingsSvc := service.NewSettingsService(settingsRepo, cal, observers...)

	app := &cli.App{
		Dashboard: service.NewDashboardService(historySvc, settingsSvc, domainRepo, taskRepo, activityRepo, cal, observers...),
		Legacy:    service.NewLegacyService(activityRepo, settingsRepo, historySvc, cal, cfg.History.RecentDays, observers...),
		History:   historySvc,
		Settings:  settingsSvc,
		Tasks:     service.NewTaskService(taskRepo, domainRepo, settingsSvc, uow, cal, observers...),
		Sessions:  service.NewSessionService(uow, cal, observers...),
		Domains:   service.NewDomainService(domainRepo, uow, cal, observers...),
		Calendar:  cal,
		Config:    cfg,
		Logger:    logger,
	}

	// Forms and the focus timer need a terminal on both ends.
	app.Interactive = isTerminal(os.Stdin) && isTerminal(os.Stdout)

	return cli.NewRootCmd(app).Execute()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// openLog returns the use-case log destination. Without a configured file
// the logs are discarded so they never interleave with command output.
func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
