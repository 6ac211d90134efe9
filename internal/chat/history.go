package chat

import "sync"

// HistoryStore is the per-process exchange cache behind the local-model chat
// path. It is intentionally ephemeral: contents vanish on restart and are
// never reconciled with the database. Only /deepseek/chat writes here.
type HistoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Exchange
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{sessions: make(map[string][]Exchange)}
}

func (h *HistoryStore) Append(sessionID string, ex Exchange) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sessionID] = append(h.sessions[sessionID], ex)
}

// Snapshot copies the whole cache, keyed by session id.
func (h *HistoryStore) Snapshot() map[string][]Exchange {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string][]Exchange, len(h.sessions))
	for id, exs := range h.sessions {
		out[id] = append([]Exchange(nil), exs...)
	}
	return out
}
