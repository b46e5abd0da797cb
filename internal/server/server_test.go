package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/eventlog"
	"github.com/Holmiboii/ummorpg/internal/game"
	"github.com/Holmiboii/ummorpg/internal/sse"
	"github.com/Holmiboii/ummorpg/internal/world"
)

const testAPIKey = "router-test-key"

type stubPool struct {
	err error
}

func (p stubPool) Ping(context.Context) error { return p.err }
func (p stubPool) Close()                     {}

func newTestRouter(t *testing.T, pool stubPool) (http.Handler, *game.MockService) {
	t.Helper()
	svc := new(game.MockService)
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	history := eventlog.NewService(new(eventlog.MockRepository), clockwork.NewFakeClock(), eventlog.Config{})
	return NewRouter(Options{APIKey: testAPIKey, DB: pool, Game: svc, EventLog: history, Hub: hub}), svc
}

func serve(h http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Probes(t *testing.T) {
	h, _ := newTestRouter(t, stubPool{})
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/healthz", "", false).Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/readyz", "", false).Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/version", "", false).Code)

	rec := serve(h, http.MethodGet, "/metrics", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	down, _ := newTestRouter(t, stubPool{err: errors.New("connection refused")})
	assert.Equal(t, http.StatusServiceUnavailable, serve(down, http.MethodGet, "/readyz", "", false).Code)
}

func TestRouter_APIRequiresKey(t *testing.T) {
	h, svc := newTestRouter(t, stubPool{})

	rec := serve(h, http.MethodGet, "/api/v1/commands", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, HeaderValueDeny, rec.Header().Get(HeaderFrameOptions))

	rec = serve(h, http.MethodGet, "/api/v1/commands", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertNotCalled(t, "View", mock.Anything, mock.Anything)
}

func TestRouter_CharacterRoutes(t *testing.T) {
	h, svc := newTestRouter(t, stubPool{})
	view := world.View{CharacterSnapshot: domain.CharacterSnapshot{ID: "hero", Name: "Hero", Level: 1}, State: "IDLE"}

	svc.On("Login", mock.Anything, "hero", "Hero").Return(view, nil).Once()
	rec := serve(h, http.MethodPost, "/api/v1/characters/hero/login", `{"name":"Hero"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"state":"IDLE"`)

	svc.On("View", mock.Anything, "hero").Return(view, nil).Once()
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/v1/characters/hero/", "", true).Code)

	svc.On("Submit", mock.Anything, "hero", mock.AnythingOfType("*world.Respawn")).Return(nil).Once()
	assert.Equal(t, http.StatusAccepted, serve(h, http.MethodPost, "/api/v1/characters/hero/commands/respawn", "", true).Code)

	svc.On("Logout", mock.Anything, "hero").Return(nil).Once()
	assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/api/v1/characters/hero/logout", "", true).Code)

	svc.AssertExpectations(t)
}

func TestRouter_OversizedBody(t *testing.T) {
	h, _ := newTestRouter(t, stubPool{})
	body := `{"name":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`
	rec := serve(h, http.MethodPost, "/api/v1/characters/hero/login", body, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
