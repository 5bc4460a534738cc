package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bee-edu/askbee/internal/auth"
	"github.com/bee-edu/askbee/internal/config"
	"github.com/bee-edu/askbee/internal/core"
	db "github.com/bee-edu/askbee/internal/core/database"
	"github.com/bee-edu/askbee/internal/core/llm"
	"github.com/bee-edu/askbee/internal/core/rag"
	"github.com/bee-edu/askbee/internal/services"
)

// App owns the process-wide dependencies. Everything is constructed eagerly
// here and injected, so there are no lazily-built globals to race on.
type App struct {
	DBClient core.DbClient
	Server   *Server

	embedder *llm.GeminiEmbedder
	provider *llm.GeminiLLM
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg.DatabaseURLs(), cfg.EmbedDim)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	embedder, err := llm.NewGeminiEmbedder(appCtx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		_ = dbClient.Close()
		return nil, fmt.Errorf("couldn't initialize the embedder, %w", err)
	}

	provider, err := llm.NewGeminiLLM(appCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		_ = dbClient.Close()
		_ = embedder.Close()
		return nil, fmt.Errorf("couldn't initialize the llm, %w", err)
	}

	answerer := rag.New(dbClient, embedder, provider, cfg.RetrieveTopK)

	tokens := auth.NewTokenManager(cfg.JWTSecret, auth.TokenTTL)
	userService := services.NewUserService(dbClient, tokens)
	chatService := services.NewChatService(dbClient)

	router := NewRouter(cfg, userService, userService, chatService, answerer, dbClient)
	server := NewServer(cfg, router)

	return &App{
		DBClient: dbClient,
		Server:   server,
		embedder: embedder,
		provider: provider,
	}, nil
}

func (a *App) Close() {
	if a.provider != nil {
		_ = a.provider.Close()
	}
	if a.embedder != nil {
		_ = a.embedder.Close()
	}
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
