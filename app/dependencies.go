package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/config"
	"github.com/halilcengel/note.verse.backend/middleware"
	"github.com/halilcengel/note.verse.backend/repositories"
	"github.com/halilcengel/note.verse.backend/repositories/postgres"
	"github.com/halilcengel/note.verse.backend/services"
	"github.com/halilcengel/note.verse.backend/services/chat"
	"github.com/halilcengel/note.verse.backend/token"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Repos     *repositories.Repositories
	TxManager repositories.TransactionManager

	// Services
	Tokens      *token.Manager
	AuthService *services.AuthService
	ChatClient  *chat.Client

	// Middleware
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := deps.initServices(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection, repositories and schema
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()
	d.Repos = factory.NewRepositories()
	d.TxManager = factory.GetTransactionManager()

	if err := factory.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Logger.Info("repositories initialized")
	return nil
}

// initServices wires the token manager, auth service, chat relay and middleware
func (d *Dependencies) initServices(cfg *config.Config) error {
	tokens, err := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}
	d.Tokens = tokens

	d.AuthService = services.NewAuthService(
		d.Repos.Users,
		d.Repos.Students,
		d.Repos.Teachers,
		d.TxManager,
		tokens,
		d.Logger,
	)

	d.ChatClient = chat.NewClient(cfg.Chat, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(tokens, d.Logger)

	return nil
}

// Close releases all held resources
func (d *Dependencies) Close() error {
	if d.RepoFactory != nil {
		return d.RepoFactory.Close()
	}
	return nil
}
