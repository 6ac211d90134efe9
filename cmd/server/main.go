package main

import (
	"context"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chatbot-backend/internal/ai"
	"chatbot-backend/internal/chat"
	"chatbot-backend/internal/config"
	"chatbot-backend/internal/db"
	"chatbot-backend/internal/httpapi"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	reg := ai.NewRegistry()
	reg.Register("openai", func(ctx context.Context, model string) (ai.Provider, error) {
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OpenAIModel
		}
		return ai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, m, cfg.OpenAIMaxTokens), nil
	})
	reg.Register("ollama", func(ctx context.Context, model string) (ai.Provider, error) {
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, m), nil
	})

	svc := chat.NewService(chat.NewRepo(gdb), chat.NewHistoryStore(), reg, log)

	r := httpapi.NewRouter(gdb, cfg, svc, log)

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
