package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/ports"
	"github.com/adibtatriantama/FCC-Book-Trading/application/usecase"
	"github.com/adibtatriantama/FCC-Book-Trading/infrastructure/config"
	dynamorepo "github.com/adibtatriantama/FCC-Book-Trading/infrastructure/persistence/dynamodb"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/auth"
)

// Container holds the application's wired dependencies.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	UserRepository  ports.UserRepository
	BookRepository  ports.BookRepository
	TradeRepository ports.TradeRepository

	UserService  *usecase.UserService
	BookService  *usecase.BookService
	TradeService *usecase.TradeService

	JWTValidator *auth.JWTValidator
}

// InitializeContainer wires the full dependency graph.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := dynamorepo.NewClient(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	userRepo := dynamorepo.NewUserRepository(client, cfg.DynamoDBTable, logger)
	bookRepo := dynamorepo.NewBookRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
	tradeRepo := dynamorepo.NewTradeRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" && cfg.IsDevelopment() {
		jwtSecret = "development-secret-change-in-production"
	}
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: jwtSecret,
		Issuer:    cfg.JWTIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return &Container{
		Config: cfg,
		Logger: logger,

		UserRepository:  userRepo,
		BookRepository:  bookRepo,
		TradeRepository: tradeRepo,

		UserService:  usecase.NewUserService(userRepo, logger),
		BookService:  usecase.NewBookService(bookRepo, userRepo, tradeRepo, logger),
		TradeService: usecase.NewTradeService(tradeRepo, bookRepo, userRepo, logger),

		JWTValidator: validator,
	}, nil
}

// newLogger builds the zap logger for the configured environment.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		zapCfg := zap.NewProductionConfig()
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
		return zapCfg.Build()
	}
	return zap.NewDevelopment()
}
