package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahuti/trade-engine/internal/api/handlers"
	"github.com/yahuti/trade-engine/internal/auth"
	"github.com/yahuti/trade-engine/internal/ebay"
	"github.com/yahuti/trade-engine/internal/session"
)

// exchangeSource scripts the code exchange outcome.
type exchangeSource struct {
	token *ebay.UserToken
	err   error
}

func (exchangeSource) AuthorizeURL(state string) string {
	return "https://auth.sandbox.ebay.com/oauth2/authorize?state=" + state
}

func (s exchangeSource) ExchangeCode(context.Context, string) (*ebay.UserToken, error) {
	return s.token, s.err
}

func (exchangeSource) Refresh(context.Context, string) (*ebay.UserToken, error) {
	return nil, errors.New("not used")
}

func newOAuthHandler(source auth.TokenSource, store session.Store) *handlers.OAuthHandler {
	flow := auth.NewFlow(source, store, discardLogger())
	codec := session.NewCookieCodec(time.Hour, false)
	return handlers.NewOAuthHandler(flow, codec, false, "/")
}

func stateCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "yte_oauth_state" {
			return c
		}
	}
	t.Fatal("state cookie not set")
	return nil
}

func TestOAuthLogin_RedirectsToConsent(t *testing.T) {
	t.Parallel()

	h := newOAuthHandler(exchangeSource{}, session.NewMemoryStore())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/ebay/login", http.NoBody)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusFound, rec.Code)

	location := rec.Header().Get("Location")
	state := stateCookieFrom(t, rec)
	assert.Contains(t, location, "authorize")
	assert.Contains(t, location, "state="+state.Value)
	assert.True(t, state.HttpOnly)
}

func TestOAuthCallback_Success(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	source := exchangeSource{
		token: &ebay.UserToken{
			AccessToken:  "v^1.1#access",
			RefreshToken: "v^1.1#refresh",
			TokenType:    "Bearer",
			ExpiresAt:    time.Now().Add(2 * time.Hour),
		},
	}
	h := newOAuthHandler(source, store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/ebay/callback?code=c1&state=st", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "yte_oauth_state", Value: "st"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Callback(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/?auth=success", rec.Header().Get("Location"))

	var sid string
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			sid = c.Value
		}
	}
	require.NotEmpty(t, sid, "session cookie must be set")

	recStored, err := store.Get(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, "v^1.1#access", recStored.AccessToken)
}

func TestOAuthCallback_StateMismatch(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	h := newOAuthHandler(exchangeSource{token: &ebay.UserToken{}}, store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/ebay/callback?code=c1&state=evil", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "yte_oauth_state", Value: "st"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Callback(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/?auth=error", rec.Header().Get("Location"))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "no session may be created on state mismatch")
}

func TestOAuthCallback_MissingCode(t *testing.T) {
	t.Parallel()

	h := newOAuthHandler(exchangeSource{}, session.NewMemoryStore())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/ebay/callback?state=st", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "yte_oauth_state", Value: "st"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Callback(e.NewContext(req, rec)))
	assert.Equal(t, "/?auth=error", rec.Header().Get("Location"))
}

func TestOAuthCallback_ExchangeFailure(t *testing.T) {
	t.Parallel()

	h := newOAuthHandler(exchangeSource{err: errors.New("invalid_grant")}, session.NewMemoryStore())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/ebay/callback?code=bad&state=st", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "yte_oauth_state", Value: "st"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Callback(e.NewContext(req, rec)))
	assert.Equal(t, "/?auth=error", rec.Header().Get("Location"))
}

func TestOAuthLogout(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	rec0 := &session.Record{
		ID:          "sid-1",
		AccessToken: "t",
		ExpiresAt:   time.Now().Add(time.Hour),
		Status:      session.StatusAuthenticated,
	}
	require.NoError(t, store.Create(context.Background(), rec0))

	h := newOAuthHandler(exchangeSource{}, store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/ebay/logout", http.NoBody)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-1"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusFound, rec.Code)

	_, err := store.Get(context.Background(), "sid-1")
	assert.ErrorIs(t, err, session.ErrNotFound)

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie must be expired")
}
