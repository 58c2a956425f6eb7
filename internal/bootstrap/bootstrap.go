package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/okorolev/manual-assistant/internal/config"
	"github.com/okorolev/manual-assistant/internal/core/ports"
	"github.com/okorolev/manual-assistant/internal/core/usecase"
	"github.com/okorolev/manual-assistant/internal/infrastructure/llm/nim"
	natsqueue "github.com/okorolev/manual-assistant/internal/infrastructure/queue/nats"
	"github.com/okorolev/manual-assistant/internal/infrastructure/repository/postgres"
	"github.com/okorolev/manual-assistant/internal/infrastructure/resilience"
	"github.com/okorolev/manual-assistant/internal/infrastructure/session/inmem"
	"github.com/okorolev/manual-assistant/internal/infrastructure/vector/flat"
)

type App struct {
	Config config.Config
	Chat   ports.ChatService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	index := flat.New(flat.Config{
		IndexPath:          cfg.IndexPath,
		MetadataPath:       cfg.MetadataPath,
		EmbeddingsTextPath: cfg.EmbeddingsTextPath,
		ChunksTextPath:     cfg.ChunksTextPath,
	})
	// The load barrier is lazy, but a corpus that cannot load means no query
	// can ever be served; surface that at startup instead of per request.
	if err := index.Load(ctx); err != nil {
		return nil, fmt.Errorf("load corpus index: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	llmClient := nim.New(nim.Config{
		EmbeddingBaseURL:  cfg.EmbeddingBaseURL,
		EmbeddingModel:    cfg.EmbeddingModel,
		GenerationBaseURL: cfg.GenerationBaseURL,
		GenerationModel:   cfg.GenerationModel,
		EmbedTimeout:      time.Duration(cfg.EmbedTimeoutSeconds) * time.Second,
		GenerateTimeout:   time.Duration(cfg.GenerateTimeoutSeconds) * time.Second,
	}, executor)

	var closers []func()

	var sessions ports.SessionStore
	switch cfg.SessionBackend {
	case "postgres":
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewSessionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure session schema: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
		sessions = repo
	default:
		sessions = inmem.New(cfg.SessionCapacity, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	}

	var escalations ports.EscalationPublisher
	if cfg.EscalationsEnabled {
		publisher, err := natsqueue.New(cfg.NATSURL, cfg.EscalationSubject)
		if err != nil {
			return nil, fmt.Errorf("init escalation publisher: %w", err)
		}
		closers = append(closers, publisher.Close)
		escalations = publisher
	}

	chatUC := usecase.NewAnswerUseCase(llmClient, index, llmClient, sessions, escalations, rules, cfg.RAGTopK)

	return &App{
		Config: cfg,
		Chat:   chatUC,
		closeFn: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
