package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Holmiboii/ummorpg/internal/game"
	"github.com/Holmiboii/ummorpg/internal/logger"
	"github.com/Holmiboii/ummorpg/internal/world"
)

// LoginRequest is the optional body of a login. Name is used only when the
// character does not exist yet.
type LoginRequest struct {
	Name string `json:"name" validate:"omitempty,max=32"`
}

// CommandAccepted acknowledges a queued command
type CommandAccepted struct {
	CharacterID string `json:"character_id"`
	Kind        string `json:"kind"`
}

// CommandKinds lists the accepted command kinds
type CommandKinds struct {
	Kinds []string `json:"kinds"`
}

// CharacterHandler serves the session and command endpoints
type CharacterHandler struct {
	svc game.Service
}

// NewCharacterHandler creates a handler backed by svc
func NewCharacterHandler(svc game.Service) *CharacterHandler {
	return &CharacterHandler{svc: svc}
}

// HandleLogin puts a character into the world
// @Summary Log a character in
// @Description Loads the character, creating it when unknown, and spawns it
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character id"
// @Param request body LoginRequest false "Display name for new characters"
// @Success 200 {object} world.View
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /characters/{id}/login [post]
func (h *CharacterHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	id, ok := characterID(w, r)
	if !ok {
		return
	}
	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}

	view, err := h.svc.Login(r.Context(), id, req.Name)
	if err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleLogout saves a character and takes it out of the world
// @Summary Log a character out
// @Tags characters
// @Produce json
// @Param id path string true "Character id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /characters/{id}/logout [post]
func (h *CharacterHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	id, ok := characterID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Logout(r.Context(), id); err != nil {
		respondServiceError(w, r, "Logout", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "logged out"})
}

// HandleGet returns the current state of an online character
// @Summary Current character state
// @Tags characters
// @Produce json
// @Param id path string true "Character id"
// @Success 200 {object} world.View
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /characters/{id} [get]
func (h *CharacterHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := characterID(w, r)
	if !ok {
		return
	}
	view, err := h.svc.View(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "View", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleCommand validates a command body and queues it for the next step
// @Summary Queue a command
// @Description The body depends on the kind; see GET /commands for the list
// @Tags commands
// @Accept json
// @Produce json
// @Param id path string true "Character id"
// @Param kind path string true "Command kind"
// @Success 202 {object} CommandAccepted
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /characters/{id}/commands/{kind} [post]
func (h *CharacterHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	id, ok := characterID(w, r)
	if !ok {
		return
	}
	kind := chi.URLParam(r, "kind")
	cmd, ok := world.NewCommand(kind)
	if !ok {
		respondError(w, http.StatusNotFound, ErrMsgUnknownCommand)
		return
	}
	if err := DecodeAndValidateRequest(r, w, cmd, kind); err != nil {
		return
	}

	if err := h.svc.Submit(r.Context(), id, cmd); err != nil {
		respondServiceError(w, r, "Submit", err)
		return
	}
	logger.FromContext(r.Context()).Debug(LogMsgCommandSubmitted, "kind", kind)
	respondJSON(w, http.StatusAccepted, CommandAccepted{CharacterID: id, Kind: kind})
}

// HandleListCommands lists every command kind
// @Summary Command kinds
// @Tags commands
// @Produce json
// @Success 200 {object} CommandKinds
// @Security ApiKeyAuth
// @Router /commands [get]
func HandleListCommands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, CommandKinds{Kinds: world.Kinds()})
	}
}
