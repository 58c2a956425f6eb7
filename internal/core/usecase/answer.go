package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/okorolev/manual-assistant/internal/core/domain"
	"github.com/okorolev/manual-assistant/internal/core/ports"
)

const defaultTopK = 4

// followUpSeparator joins the previous answer and the new user text when a
// turn is classified as a follow-up.
const followUpSeparator = "\n\nUser follow-up: "

// AnswerUseCase is the retrieval-augmented answer pipeline. One instance is
// shared by all request workers; turns on the same session serialize via
// per-session locks, turns on different sessions run concurrently.
type AnswerUseCase struct {
	embedder    ports.Embedder
	retriever   ports.Retriever
	generator   ports.AnswerGenerator
	sessions    ports.SessionStore
	escalations ports.EscalationPublisher
	rules       domain.AssistantRules
	topK        int

	locks *sessionLocks
}

func NewAnswerUseCase(
	embedder ports.Embedder,
	retriever ports.Retriever,
	generator ports.AnswerGenerator,
	sessions ports.SessionStore,
	escalations ports.EscalationPublisher,
	rules domain.AssistantRules,
	topK int,
) *AnswerUseCase {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &AnswerUseCase{
		embedder:    embedder,
		retriever:   retriever,
		generator:   generator,
		sessions:    sessions,
		escalations: escalations,
		rules:       rules,
		topK:        topK,
		locks:       newSessionLocks(),
	}
}

func (uc *AnswerUseCase) Answer(ctx context.Context, req domain.ChatRequest) (*domain.Answer, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "answer", fmt.Errorf("query is required"))
	}
	queryLower := strings.ToLower(query)

	// Scope check runs before follow-up augmentation and before any network
	// call; an off-topic turn must not contaminate the session context.
	if req.Appliance != "" && uc.rules.MentionsOtherAppliance(queryLower, req.Appliance) {
		return &domain.Answer{
			Text:       scopeRejectionMessage(req.Brand, req.Appliance),
			Sources:    []domain.RetrievedChunk{},
			OutOfScope: true,
		}, nil
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID != "" {
		unlock := uc.locks.lock(sessionID)
		defer unlock()
	}

	embedInput := query
	followUp := false
	if sessionID != "" && uc.rules.IsFollowUp(queryLower) {
		prev, ok, err := uc.sessions.LastAnswer(ctx, sessionID)
		if err != nil {
			slog.Warn("session context read failed", "session_id", sessionID, "error", err)
		} else if ok && prev != "" {
			embedInput = prev + followUpSeparator + query
			followUp = true
		}
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, embedInput)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	retrieved, err := uc.retriever.Search(ctx, queryVector, uc.topK)
	if err != nil {
		return nil, fmt.Errorf("search corpus index: %w", err)
	}

	answerText, err := uc.generator.GenerateAnswer(ctx, buildAnswerPrompt(embedInput, retrieved))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	// Only a successfully generated answer updates the session context, and
	// always under the original session identifier.
	if sessionID != "" {
		if err := uc.sessions.RememberAnswer(ctx, sessionID, answerText); err != nil {
			slog.Warn("session context write failed", "session_id", sessionID, "error", err)
		}
	}

	final, escalated := uc.enrichAnswer(answerText, queryLower, req.Brand, req.Appliance)
	if escalated {
		uc.publishEscalation(ctx, req, queryLower)
	}

	return &domain.Answer{
		Text:      final,
		Sources:   retrieved,
		FollowUp:  followUp,
		Escalated: escalated,
	}, nil
}

func (uc *AnswerUseCase) publishEscalation(ctx context.Context, req domain.ChatRequest, queryLower string) {
	if uc.escalations == nil {
		return
	}
	event := domain.EscalationEvent{
		SessionID: req.SessionID,
		Brand:     req.Brand,
		Appliance: req.Appliance,
		Query:     queryLower,
	}
	if profile, ok := uc.rules.SupportFor(req.Brand, req.Appliance); ok {
		event.TollFree = profile.TollFree
	}
	if err := uc.escalations.PublishEscalation(ctx, event); err != nil {
		slog.Warn("escalation publish failed", "session_id", req.SessionID, "error", err)
	}
}

func scopeRejectionMessage(brand, appliance string) string {
	section := strings.TrimSpace(strings.TrimSpace(brand) + " " + strings.TrimSpace(appliance))
	return fmt.Sprintf(
		"You're currently in the %s section. Please ask questions related only to this appliance. For other appliances, start a new session.",
		section,
	)
}
