package app

import (
	"context"
	"database/sql"
	"log/slog"

	"rezonans/internal/config"
	"rezonans/internal/infrastructure/api"
	"rezonans/internal/infrastructure/preview"
	"rezonans/internal/infrastructure/profile"
	"rezonans/internal/infrastructure/storage"
	"rezonans/internal/infrastructure/telegram"
	"rezonans/internal/logging"
	"rezonans/internal/ports"
	"rezonans/internal/usecase"
)

// Application wires configuration into use cases and owns shared resources.
type Application struct {
	Config      config.Config
	Logger      *slog.Logger
	Tracker     *usecase.Tracker
	Submitter   *usecase.Submitter
	Poller      *usecase.Poller
	Refresher   *usecase.Refresher
	Regenerator *usecase.Regenerator
	Delivery    *usecase.Delivery
	Profiles    ports.ProfileStore

	db *sql.DB
}

// New builds a runnable application. A broken task cache degrades to
// in-memory tracking instead of failing the command.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := api.NewClient(cfg.API.BaseURL, ports.StaticToken(cfg.API.Token))

	var (
		db   *sql.DB
		repo ports.TaskRepository
	)
	if opened, err := storage.Open(cfg.Cache.Path); err != nil {
		baseLogger.Warn("task cache unavailable, tracking in memory only", "path", cfg.Cache.Path, "error", err)
	} else {
		db = opened
		repo = storage.NewSQLiteRepository(db)
	}

	tracker := usecase.NewTracker(repo, baseLogger.With("component", "tracker"))
	if err := tracker.Restore(ctx); err != nil {
		baseLogger.Warn("task cache restore failed", "error", err)
	}

	profiles := profile.NewFileStore(cfg.Profile.Path)
	enricher := preview.NewEnricher(nil, baseLogger.With("component", "preview"))

	var publisher ports.Publisher
	if tg := telegram.NewPublisher(cfg.Telegram.BotToken, cfg.Telegram.ChatID); tg.Configured() {
		publisher = tg
	}

	submitter := usecase.NewSubmitter(usecase.SubmitterDeps{
		API:      client,
		Tracker:  tracker,
		Profiles: profiles,
		Enricher: enricher,
		Provider: cfg.Generation.ModelProvider,
		Logger:   baseLogger.With("component", "submit"),
	})

	return &Application{
		Config:      cfg,
		Logger:      baseLogger,
		Tracker:     tracker,
		Submitter:   submitter,
		Poller:      usecase.NewPoller(client, tracker, cfg.Poll.Interval, cfg.Poll.MaxDuration, baseLogger.With("component", "poller")),
		Refresher:   usecase.NewRefresher(client, tracker, baseLogger.With("component", "reconciler")),
		Regenerator: usecase.NewRegenerator(client, tracker, cfg.Generation.ModelProvider, baseLogger.With("component", "regenerate")),
		Delivery:    usecase.NewDelivery(client, tracker, publisher, baseLogger.With("component", "delivery")),
		Profiles:    profiles,
		db:          db,
	}, nil
}

// Close releases resources held by the application.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
