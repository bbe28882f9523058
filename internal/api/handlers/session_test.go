package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahuti/trade-engine/internal/api/handlers"
	"github.com/yahuti/trade-engine/internal/auth"
	"github.com/yahuti/trade-engine/internal/ebay"
	"github.com/yahuti/trade-engine/internal/session"
)

// staticTokenSource satisfies auth.TokenSource; session status tests never
// reach the vendor.
type staticTokenSource struct{}

func (staticTokenSource) AuthorizeURL(state string) string { return "https://example.test?state=" + state }

func (staticTokenSource) ExchangeCode(context.Context, string) (*ebay.UserToken, error) {
	return nil, nil
}

func (staticTokenSource) Refresh(context.Context, string) (*ebay.UserToken, error) {
	return nil, nil
}

func newSessionAPI(t *testing.T, store session.Store) humatest.TestAPI {
	t.Helper()

	flow := auth.NewFlow(staticTokenSource{}, store, discardLogger())

	_, api := humatest.New(t)
	handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(flow))
	return api
}

func TestSessionHandler_NoCookie(t *testing.T) {
	t.Parallel()

	api := newSessionAPI(t, session.NewMemoryStore())

	resp := api.Get("/api/v1/session")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"authenticated":false`)
}

func TestSessionHandler_UnknownSession(t *testing.T) {
	t.Parallel()

	api := newSessionAPI(t, session.NewMemoryStore())

	resp := api.Get("/api/v1/session", "Cookie: yte_session=ghost")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"authenticated":false`)
}

func TestSessionHandler_Authenticated(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	rec := &session.Record{
		ID:          "sid-1",
		AccessToken: "v^1.1#access",
		ExpiresAt:   time.Now().Add(time.Hour),
		Status:      session.StatusAuthenticated,
	}
	require.NoError(t, store.Create(context.Background(), rec))

	api := newSessionAPI(t, store)

	resp := api.Get("/api/v1/session", "Cookie: yte_session=sid-1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"authenticated":true`)
	assert.Contains(t, resp.Body.String(), "expires_at")
}

func TestSessionHandler_ExpiredToken(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	rec := &session.Record{
		ID:          "sid-1",
		AccessToken: "v^1.1#access",
		ExpiresAt:   time.Now().Add(-time.Minute),
		Status:      session.StatusAuthenticated,
	}
	require.NoError(t, store.Create(context.Background(), rec))

	api := newSessionAPI(t, store)

	resp := api.Get("/api/v1/session", "Cookie: yte_session=sid-1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"authenticated":false`)
}
