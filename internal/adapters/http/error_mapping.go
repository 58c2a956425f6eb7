package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/okorolev/manual-assistant/internal/core/domain"
)

// fallbackMessage is the only text an end user sees for a model-service
// failure. The real cause is logged here, at the outermost boundary, and
// never leaks into the response.
const fallbackMessage = "I apologize, but I'm experiencing technical difficulties. Please try again later."

func (rt *Router) writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case domain.IsKind(err, domain.ErrEmbeddingService),
		domain.IsKind(err, domain.ErrGenerationService),
		domain.IsKind(err, domain.ErrTemporary):
		slog.Error("chat turn failed",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": fallbackMessage})
	default:
		slog.Error("chat turn failed",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fallbackMessage})
	}
}
