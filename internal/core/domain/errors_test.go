package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapErrorKeepsKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ErrEmbeddingService, "embed query", cause)

	if !IsKind(err, ErrEmbeddingService) {
		t.Fatalf("expected embedding service kind: %v", err)
	}
	if IsKind(err, ErrGenerationService) {
		t.Fatalf("error must not match a different kind")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestIsKindThroughFurtherWrapping(t *testing.T) {
	err := WrapError(ErrIndexLoad, "read index", errors.New("no such file"))
	wrapped := fmt.Errorf("load corpus: %w", err)

	if !IsKind(wrapped, ErrIndexLoad) {
		t.Fatalf("kind must survive wrapping: %v", wrapped)
	}
}

func TestIsKindNil(t *testing.T) {
	if IsKind(nil, ErrTemporary) {
		t.Fatalf("nil error has no kind")
	}
}
