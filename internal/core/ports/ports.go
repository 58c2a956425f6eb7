package ports

import (
	"context"

	"github.com/okorolev/manual-assistant/internal/core/domain"
)

// ChatService is the inbound contract for the retrieval-augmented answer
// pipeline.
type ChatService interface {
	Answer(ctx context.Context, req domain.ChatRequest) (*domain.Answer, error)
}

// Embedder turns a query text into a fixed-length vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Retriever performs a k-nearest-neighbor search over the corpus index and
// resolves hits to chunk records, ascending by distance.
type Retriever interface {
	Search(ctx context.Context, queryVector []float32, k int) ([]domain.RetrievedChunk, error)
}

// AnswerGenerator creates the final answer text from an assembled prompt.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, prompt string) (string, error)
}

// SessionStore keeps the last generated answer per session for follow-up
// resolution. LastAnswer's second return reports whether a prior answer
// exists.
type SessionStore interface {
	LastAnswer(ctx context.Context, sessionID string) (string, bool, error)
	RememberAnswer(ctx context.Context, sessionID, answer string) error
}

// EscalationPublisher emits best-effort events when a turn matches
// major-repair keywords.
type EscalationPublisher interface {
	PublishEscalation(ctx context.Context, event domain.EscalationEvent) error
}
