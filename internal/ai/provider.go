package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider turns an ordered message history into generated text with one
// blocking call. No retries; the caller decides what a failure means.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
