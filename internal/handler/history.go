package handler

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/eventlog"
)

// Query parameters of the history endpoint
const (
	QueryParamType  = "type"
	QueryParamLimit = "limit"
)

// HistoryResponse lists stored events, newest first
type HistoryResponse struct {
	Events []eventlog.Record `json:"events"`
}

// HistoryHandler serves the audit trail of a character
type HistoryHandler struct {
	log eventlog.Service
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(log eventlog.Service) *HistoryHandler {
	return &HistoryHandler{log: log}
}

// HandleHistory returns the stored events of a character
// @Summary Character event history
// @Description Deaths, level ups, trades, crafts and quests recorded for the character, newest first
// @Tags characters
// @Produce json
// @Param id path string true "Character id"
// @Param type query string false "Only this event type"
// @Param limit query int false "Maximum number of events"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /characters/{id}/history [get]
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := characterID(w, r)
	if !ok {
		return
	}
	filter := eventlog.Filter{EntityID: id}

	if raw := r.URL.Query().Get(QueryParamLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		filter.Limit = limit
	}
	if raw := r.URL.Query().Get(QueryParamType); raw != "" {
		t := event.Type(raw)
		if !slices.Contains(eventlog.LoggedTypes, t) {
			respondError(w, http.StatusBadRequest, ErrMsgUnknownEventType)
			return
		}
		filter.Type = t
	}

	records, err := h.log.Events(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "History", err)
		return
	}
	if records == nil {
		records = []eventlog.Record{}
	}
	respondJSON(w, http.StatusOK, HistoryResponse{Events: records})
}
