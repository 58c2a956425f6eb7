package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexLoad means the corpus artifacts are missing or corrupt.
	// The pipeline cannot serve any query; bootstrap must fail.
	ErrIndexLoad = errors.New("corpus index load failure")

	// ErrEmbeddingService and ErrGenerationService are per-request failures
	// of the remote model services. The pipeline stays usable afterwards.
	ErrEmbeddingService  = errors.New("embedding service failure")
	ErrGenerationService = errors.New("generation service failure")

	ErrInvalidInput = errors.New("invalid input")
	ErrTemporary    = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
