package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chatbot-backend/internal/ai"
)

const (
	cloudProvider = "openai"
	localProvider = "ollama"

	cloudSystemPrompt = "Você é um assistente útil."
	localSystemPrompt = "Você é um assistente que deve responser o mais rapido e direto possivel."
)

// Service assembles provider payloads and persists the resulting exchanges.
// The cloud path writes to the database; the local path only touches the
// in-memory history store.
type Service struct {
	repo     *Repo
	history  *HistoryStore
	registry *ai.Registry
	log      *zap.Logger
}

func NewService(repo *Repo, history *HistoryStore, registry *ai.Registry, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, history: history, registry: registry, log: log}
}

// CloudChat sends the prompt with the supplied exchange history to the cloud
// provider and stores the resulting user+bot pair on the session. Provider
// errors propagate to the caller; the session lookup happens only after the
// provider call, so an unknown session still costs one completion.
func (s *Service) CloudChat(ctx context.Context, sessionID, prompt string, history []Exchange) (string, error) {
	provider, err := s.registry.Get(ctx, cloudProvider, "")
	if err != nil {
		return "", err
	}

	msgs := make([]ai.Message, 0, len(history)*2+2)
	msgs = append(msgs, ai.Message{Role: "system", Content: cloudSystemPrompt})
	for _, ex := range history {
		msgs = append(msgs, ai.Message{Role: "user", Content: ex.User})
		msgs = append(msgs, ai.Message{Role: "assistant", Content: ex.Bot})
	}
	msgs = append(msgs, ai.Message{Role: "user", Content: prompt})

	reply, err := provider.Chat(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("chat: cloud provider: %w", err)
	}

	if err := s.repo.AppendExchange(ctx, sessionID, prompt, reply); err != nil {
		return "", err
	}
	return reply, nil
}

// LocalChat sends the prompt with raw role/content history to the local model
// runner. A provider failure becomes the reply text instead of an error, so
// the HTTP call still succeeds. The exchange lands in the ephemeral history
// store, never in the database.
func (s *Service) LocalChat(ctx context.Context, sessionID, prompt string, history []ai.Message) string {
	var reply string

	provider, err := s.registry.Get(ctx, localProvider, "")
	if err == nil {
		msgs := make([]ai.Message, 0, len(history)+2)
		msgs = append(msgs, ai.Message{Role: "system", Content: localSystemPrompt})
		msgs = append(msgs, history...)
		msgs = append(msgs, ai.Message{Role: "user", Content: prompt})
		reply, err = provider.Chat(ctx, msgs)
	}
	if err != nil {
		s.log.Warn("local provider failed, degrading to text reply",
			zap.String("session_id", sessionID), zap.Error(err))
		reply = fmt.Sprintf("DeepSeek model error: %v", err)
	}

	s.history.Append(sessionID, Exchange{User: prompt, Bot: reply})
	return reply
}

// History returns a copy of the whole in-memory history cache.
func (s *Service) History() map[string][]Exchange {
	return s.history.Snapshot()
}
