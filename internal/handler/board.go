package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tallyboard/platform/internal/auth"
	"github.com/tallyboard/platform/internal/domain"
)

// BoardService is the slice of the board service the handlers need.
type BoardService interface {
	Create(ctx context.Context, name string) (*domain.BoardKeys, error)
	Scores(ctx context.Context, name, presentedKey string) ([]domain.ScoreRecord, error)
	Submit(ctx context.Context, name, presentedKey string, record domain.ScoreRecord) error
	Delete(ctx context.Context, name, presentedKey string) error
}

// BoardHandler handles board lifecycle and score endpoints.
type BoardHandler struct {
	svc BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(svc BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// Greeting handles GET /.
func Greeting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Hello, world"))
}

// CreateBoard handles POST /board/create. The body is a JSON string holding
// the board name; the response is the one-time key disclosure.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var name string
	if err := DecodeJSON(r, &name); err != nil {
		RespondError(w, domain.ErrValidation("request body must be a JSON string"))
		return
	}

	keys, err := h.svc.Create(r.Context(), name)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, keys)
}

// GetScores handles GET /board/{name}.
func (h *BoardHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	records, err := h.svc.Scores(r.Context(), name, auth.KeyFromRequest(r))
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, records)
}

// SubmitScore handles POST /board/{name}.
func (h *BoardHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var record domain.ScoreRecord
	if err := DecodeJSON(r, &record); err != nil {
		RespondError(w, domain.ErrValidation("invalid score record"))
		return
	}

	if err := h.svc.Submit(r.Context(), name, auth.KeyFromRequest(r), record); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteBoard handles DELETE /board/{name}.
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.svc.Delete(r.Context(), name, auth.KeyFromRequest(r)); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
