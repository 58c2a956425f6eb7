package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okorolev/manual-assistant/internal/core/domain"
	"github.com/okorolev/manual-assistant/internal/core/ports"
	"github.com/okorolev/manual-assistant/internal/observability/metrics"
)

const serviceName = "manual-assistant-api"

type Router struct {
	chat        ports.ChatService
	metrics     *metrics.HTTPServerMetrics
	maxInFlight int
}

func NewRouter(chat ports.ChatService, m *metrics.HTTPServerMetrics, maxInFlight int) *Router {
	return &Router{
		chat:        chat,
		metrics:     m,
		maxInFlight: maxInFlight,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	mux.HandleFunc("/v1/chat/query", rt.chatQuery)

	var handler http.Handler = mux
	handler = backpressureMiddleware(rt.maxInFlight, handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chatQueryRequest struct {
	Message   string `json:"message"`
	Appliance string `json:"appliance"`
	Brand     string `json:"brand"`
	SessionID string `json:"session_id"`
}

type chatQueryResponse struct {
	Answer    string                  `json:"answer"`
	Sources   []domain.RetrievedChunk `json:"sources"`
	SessionID string                  `json:"session_id"`
}

func (rt *Router) chatQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req chatQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	start := time.Now()
	answer, err := rt.chat.Answer(r.Context(), domain.ChatRequest{
		Query:     req.Message,
		Appliance: req.Appliance,
		Brand:     req.Brand,
		SessionID: sessionID,
	})
	if err != nil {
		rt.writeChatError(w, r, err)
		return
	}

	rt.observeTurn(answer, time.Since(start))

	writeJSON(w, http.StatusOK, chatQueryResponse{
		Answer:    answer.Text,
		Sources:   answer.Sources,
		SessionID: sessionID,
	})
}

func (rt *Router) observeTurn(answer *domain.Answer, duration time.Duration) {
	if rt.metrics == nil {
		return
	}
	outcome := "answered"
	if answer.OutOfScope {
		outcome = "out_of_scope"
		rt.metrics.RecordOutOfScope(serviceName)
	}
	if answer.FollowUp {
		rt.metrics.RecordFollowUp(serviceName)
	}
	if answer.Escalated {
		rt.metrics.RecordEscalation(serviceName)
	}

	withText := 0
	for _, source := range answer.Sources {
		if source.Text != "" {
			withText++
		}
	}
	rt.metrics.RecordChatTurn(serviceName, outcome, withText, duration)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
