// Package httpapi implements the CardKeep REST API using chi.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cardkeep/cardkeep/internal/logging"
	"github.com/cardkeep/cardkeep/internal/server/models"
	"github.com/cardkeep/cardkeep/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// UserService is the slice of the user service consumed by the handlers.
type UserService interface {
	Register(ctx context.Context, displayName, email, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.User, *services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// CardService is the slice of the card service consumed by the handlers.
type CardService interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Card, error)
	Create(ctx context.Context, ownerID string, card *models.Card) (*models.Card, error)
	Patch(ctx context.Context, ownerID, id string, patch *models.CardPatch) (*models.Card, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// ExportService produces downloadable card exports.
type ExportService interface {
	Export(ctx context.Context, ownerID string, format services.ExportFormat) (string, error)
}

// Handler holds API route handlers.
type Handler struct {
	users   UserService
	cards   CardService
	exports ExportService
	logger  logging.Logger
}

// NewHandler creates a new Handler.
func NewHandler(users UserService, cards CardService, exports ExportService, logger logging.Logger) *Handler {
	return &Handler{users: users, cards: cards, exports: exports, logger: logger.With("module", "httpapi")}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// --- auth handlers ---

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	user, tokens, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Error(r.Context(), "register failed", "error", err.Error())
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionResponse(user, tokens))
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	user, tokens, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(user, tokens))
}

// Refresh handles POST /api/auth/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decode(r, &req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("refresh_token is required"))
		return
	}

	user, tokens, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(user, tokens))
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decode(r, &req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("refresh_token is required"))
		return
	}

	if err := h.users.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequestReset handles POST /api/auth/reset.
func (h *Handler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if err := h.users.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ConfirmReset handles POST /api/auth/reset/confirm.
func (h *Handler) ConfirmReset(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if err := h.users.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- card handlers ---

// ListCards handles GET /api/cards.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	items, err := h.cards.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.logger.Error(r.Context(), "list cards failed", "error", err.Error())
		writeError(w, err)
		return
	}

	result := make([]cardResponse, 0, len(items))
	for _, c := range items {
		result = append(result, newCardResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": result})
}

// CreateCard handles POST /api/cards.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	var req cardRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	card, err := h.cards.Create(r.Context(), ownerID, req.toModel())
	if err != nil {
		h.logger.Error(r.Context(), "create card failed", "error", err.Error())
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCardResponse(card))
}

// PatchCard handles PATCH /api/cards/{id}.
func (h *Handler) PatchCard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}

	var req cardPatchRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	card, err := h.cards.Patch(r.Context(), ownerID, id, req.toModel())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCardResponse(card))
}

// DeleteCard handles DELETE /api/cards/{id}.
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}

	if err := h.cards.Delete(r.Context(), ownerID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- export ---

// ExportCards handles POST /api/export.
func (h *Handler) ExportCards(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	req := exportRequest{Format: string(services.ExportFormatCSV)}
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
			return
		}
	}

	url, err := h.exports.Export(r.Context(), ownerID, services.ExportFormat(req.Format))
	if err != nil {
		h.logger.Error(r.Context(), "export failed", "error", err.Error())
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{URL: url})
}

// Ping handles GET /api/ping.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
