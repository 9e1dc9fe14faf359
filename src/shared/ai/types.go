package ai

import "context"

// Client is a provider-agnostic interface for the two model operations the
// bot performs. Both are single-turn; no session state is carried between
// calls.
type Client interface {
	// Chat answers a free-form question.
	Chat(ctx context.Context, question string) (string, error)
	// Summarize condenses a conversation transcript.
	Summarize(ctx context.Context, transcript string) (string, error)
}
