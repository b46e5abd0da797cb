package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/logger"
)

// ParseFilter reads the entity and types query parameters
func ParseFilter(r *http.Request) Filter {
	f := Filter{EntityID: r.URL.Query().Get(QueryParamEntity)}
	if raw := r.URL.Query().Get(QueryParamTypes); raw != "" {
		f.Types = make(map[event.Type]bool)
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Types[event.Type(t)] = true
			}
		}
	}
	return f
}

// Handler returns an HTTP handler for SSE connections
//
//	@Summary		Stream simulation events
//	@Description	Server-sent events for the bus, optionally filtered by entity and event types
//	@Tags			events
//	@Produce		text/event-stream
//	@Param			entity	query	string	false	"Only events about this entity"
//	@Param			types	query	string	false	"Comma separated event types"
//	@Success		200
//	@Router			/events [get]
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ctx := r.Context()
		log := logger.FromContext(ctx)
		filter := ParseFilter(r)
		client := hub.Register(filter)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "entity_id", filter.EntityID, "total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(evt event.Event) bool {
			msg, err := FormatSSEMessage(evt)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		connected := event.Event{ID: client.ID, Type: EventTypeConnected, EntityID: filter.EntityID, Timestamp: time.Now()}
		if !write(connected) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-client.EventChannel:
				if !ok {
					return
				}
				if !write(evt) {
					return
				}
			case <-ticker.C:
				if !write(event.Event{Type: EventTypeKeepalive, Timestamp: time.Now()}) {
					return
				}
			}
		}
	}
}
