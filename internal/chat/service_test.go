package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chatbot-backend/internal/ai"
)

type recordingProvider struct {
	last  []ai.Message
	reply string
	err   error
}

func (p *recordingProvider) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	_ = ctx
	// copy to avoid mutations
	p.last = append([]ai.Message(nil), messages...)
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func newTestService(t *testing.T, cloud, local *recordingProvider) (*Service, *Repo) {
	t.Helper()
	repo := NewRepo(openTestDB(t))
	reg := ai.NewRegistry()
	if cloud != nil {
		reg.Register("openai", func(ctx context.Context, model string) (ai.Provider, error) {
			return cloud, nil
		})
	}
	if local != nil {
		reg.Register("ollama", func(ctx context.Context, model string) (ai.Provider, error) {
			return local, nil
		})
	}
	return NewService(repo, NewHistoryStore(), reg, nil), repo
}

func TestCloudChat_BuildsPayloadAndPersists(t *testing.T) {
	cloud := &recordingProvider{reply: "resposta"}
	svc, repo := newTestService(t, cloud, nil)
	mustCreateSession(t, repo, "svc-1", "svc-u1")

	history := []Exchange{{User: "antes", Bot: "resposta antiga"}}
	reply, err := svc.CloudChat(context.Background(), "svc-1", "pergunta", history)
	if err != nil {
		t.Fatalf("cloud chat: %v", err)
	}
	if reply != "resposta" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	// system + (user, assistant) per pair + new prompt
	want := []ai.Message{
		{Role: "system", Content: "Você é um assistente útil."},
		{Role: "user", Content: "antes"},
		{Role: "assistant", Content: "resposta antiga"},
		{Role: "user", Content: "pergunta"},
	}
	if len(cloud.last) != len(want) {
		t.Fatalf("expected %d provider messages, got %d", len(want), len(cloud.last))
	}
	for i := range want {
		if cloud.last[i] != want[i] {
			t.Fatalf("provider msg %d: got %+v want %+v", i, cloud.last[i], want[i])
		}
	}

	out, err := repo.ListSessionsWithMessages(context.Background(), "svc-u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || len(out[0].Messages) != 2 {
		t.Fatalf("expected 1 session with 2 stored rows, got %+v", out)
	}
	if out[0].Messages[0].User != "pergunta" || out[0].Messages[1].Bot != "resposta" {
		t.Fatalf("unexpected stored exchange: %+v", out[0].Messages)
	}
}

func TestCloudChat_UnknownSession(t *testing.T) {
	cloud := &recordingProvider{reply: "ok"}
	svc, _ := newTestService(t, cloud, nil)

	_, err := svc.CloudChat(context.Background(), "missing", "oi", nil)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCloudChat_ProviderErrorPropagates(t *testing.T) {
	cloud := &recordingProvider{err: errors.New("upstream down")}
	svc, repo := newTestService(t, cloud, nil)
	mustCreateSession(t, repo, "svc-2", "svc-u2")

	_, err := svc.CloudChat(context.Background(), "svc-2", "oi", nil)
	if err == nil || !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("expected provider error, got %v", err)
	}

	// nothing persisted on failure
	out, err := repo.ListSessionsWithMessages(context.Background(), "svc-u2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out[0].Messages) != 0 {
		t.Fatalf("expected no stored messages, got %+v", out[0].Messages)
	}
}

func TestLocalChat_AppendsToHistory(t *testing.T) {
	local := &recordingProvider{reply: "rápido"}
	svc, _ := newTestService(t, nil, local)

	history := []ai.Message{{Role: "user", Content: "antes"}}
	reply := svc.LocalChat(context.Background(), "sess-local", "direto", history)
	if reply != "rápido" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if local.last[0].Role != "system" {
		t.Fatalf("expected system prompt first, got %+v", local.last[0])
	}
	if local.last[1] != (ai.Message{Role: "user", Content: "antes"}) {
		t.Fatalf("raw history entry not forwarded: %+v", local.last[1])
	}
	if local.last[len(local.last)-1] != (ai.Message{Role: "user", Content: "direto"}) {
		t.Fatalf("prompt not last: %+v", local.last[len(local.last)-1])
	}

	hist := svc.History()
	exs := hist["sess-local"]
	if len(exs) != 1 || exs[0].User != "direto" || exs[0].Bot != "rápido" {
		t.Fatalf("unexpected history: %+v", exs)
	}
}

func TestLocalChat_ErrorBecomesReplyText(t *testing.T) {
	local := &recordingProvider{err: errors.New("model not loaded")}
	svc, _ := newTestService(t, nil, local)

	reply := svc.LocalChat(context.Background(), "sess-err", "oi", nil)
	if !strings.HasPrefix(reply, "DeepSeek model error: ") {
		t.Fatalf("expected degraded text reply, got %q", reply)
	}
	if !strings.Contains(reply, "model not loaded") {
		t.Fatalf("expected provider error in reply, got %q", reply)
	}

	// the degraded reply is still recorded as the bot turn
	exs := svc.History()["sess-err"]
	if len(exs) != 1 || exs[0].Bot != reply {
		t.Fatalf("unexpected history: %+v", exs)
	}
}
