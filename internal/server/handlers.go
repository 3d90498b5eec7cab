// internal/server/handlers.go

// Package server exposes the HTTP surface of the assistant. Handlers
// are the only place internal errors become transport responses.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"travel-assistant/internal/assistant"
	apperrors "travel-assistant/internal/common/errors"
	"travel-assistant/internal/common/logger"
	"travel-assistant/internal/common/metrics"
	"travel-assistant/internal/itinerary"
)

const sessionHeader = "X-Session-Id"

// maxUploadBytes bounds the multipart form held in memory per request.
const maxUploadBytes = 16 << 20

type Handlers struct {
	itinerary *itinerary.Service
	assistant *assistant.Service
	logger    logger.Logger
}

func NewHandlers(it *itinerary.Service, as *assistant.Service, log logger.Logger) *Handlers {
	return &Handlers{itinerary: it, assistant: as, logger: log.With(map[string]interface{}{"component": "server"})}
}

// sessionID returns the caller's session key, minting one when the
// header is absent. The effective ID is always echoed back so a
// first-time caller can keep it for follow-up questions.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(sessionHeader, id)
	return id
}

// DisplayItinerary handles the boarding-pass upload.
func (h *Handlers) DisplayItinerary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "display-itinerary", apperrors.NewInvalidRequestError("method not allowed"))
		return
	}
	id := sessionID(w, r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, "display-itinerary", apperrors.NewInvalidRequestError("malformed multipart form: "+err.Error()))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "display-itinerary", apperrors.NewInvalidRequestError("missing ticket image in field 'file'"))
		return
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, "display-itinerary", apperrors.NewInvalidRequestError("unreadable ticket image: "+err.Error()))
		return
	}

	topK := 0
	if raw := r.FormValue("top_k"); raw != "" {
		topK, err = strconv.Atoi(raw)
		if err != nil || topK < 0 {
			h.writeError(w, "display-itinerary", apperrors.NewInvalidRequestError("top_k must be a non-negative integer"))
			return
		}
	}

	resp, err := h.itinerary.Build(r.Context(), itinerary.Request{
		SessionID:      id,
		Image:          image,
		Filename:       header.Filename,
		RawPreferences: r.FormValue("preferences"),
		TopK:           topK,
	})
	if err != nil {
		h.writeError(w, "display-itinerary", err)
		return
	}

	metrics.RequestsTotal.WithLabelValues("display-itinerary", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

type askRequest struct {
	UserQuery string `json:"user_query"`
}

// Ask handles a follow-up question against the caller's session.
func (h *Handlers) Ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "ask", apperrors.NewInvalidRequestError("method not allowed"))
		return
	}
	id := sessionID(w, r)

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "ask", apperrors.NewInvalidRequestError("malformed JSON body: "+err.Error()))
		return
	}
	if req.UserQuery == "" {
		h.writeError(w, "ask", apperrors.NewInvalidRequestError("user_query is required"))
		return
	}

	resp, err := h.assistant.Ask(r.Context(), id, req.UserQuery)
	if err != nil {
		h.writeError(w, "ask", err)
		return
	}

	metrics.RequestsTotal.WithLabelValues("ask", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

// Healthz reports liveness.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handlers) writeError(w http.ResponseWriter, operation string, err error) {
	pe, ok := apperrors.AsPipelineError(err)
	if !ok {
		pe = apperrors.NewInvalidRequestError(err.Error())
	}

	metrics.RequestsTotal.WithLabelValues(operation, string(pe.Code)).Inc()
	metrics.StageFailures.WithLabelValues(operation, apperrors.Category(pe.Code)).Inc()
	h.logger.Warn("request failed", map[string]interface{}{
		"operation": operation,
		"code":      string(pe.Code),
		"details":   pe.Details,
	})

	writeJSON(w, apperrors.HTTPStatus(pe.Code), map[string]interface{}{
		"error":   string(pe.Code),
		"message": pe.Message,
		"details": pe.Details,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
