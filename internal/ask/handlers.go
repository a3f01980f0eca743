package ask

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fdg312/fitness-coach/internal/ai"
	"github.com/rs/zerolog"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleAsk обрабатывает POST /ask
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	resp, err := h.service.Ask(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ai.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, ai.Detail(err))
	case errors.Is(err, ai.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, ai.Detail(err))
	case errors.Is(err, ai.ErrUpstream):
		writeError(w, http.StatusBadGateway, ai.Detail(err))
	case errors.Is(err, ai.ErrMalformedResponse):
		writeError(w, http.StatusInternalServerError, ai.Detail(err))
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("ask failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
