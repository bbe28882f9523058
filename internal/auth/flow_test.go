package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahuti/trade-engine/internal/auth"
	"github.com/yahuti/trade-engine/internal/ebay"
	"github.com/yahuti/trade-engine/internal/session"
)

// fakeTokenSource implements auth.TokenSource with scripted responses.
type fakeTokenSource struct {
	exchangeToken *ebay.UserToken
	exchangeErr   error
	refreshToken  *ebay.UserToken
	refreshErr    error
	refreshCalls  int
}

func (f *fakeTokenSource) AuthorizeURL(state string) string {
	return "https://auth.sandbox.ebay.com/oauth2/authorize?state=" + state
}

func (f *fakeTokenSource) ExchangeCode(context.Context, string) (*ebay.UserToken, error) {
	return f.exchangeToken, f.exchangeErr
}

func (f *fakeTokenSource) Refresh(context.Context, string) (*ebay.UserToken, error) {
	f.refreshCalls++
	return f.refreshToken, f.refreshErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlow_Begin(t *testing.T) {
	t.Parallel()

	flow := auth.NewFlow(&fakeTokenSource{}, session.NewMemoryStore(), discardLogger())

	state, authorizeURL := flow.Begin()
	assert.NotEmpty(t, state)
	assert.Contains(t, authorizeURL, "state="+state)

	// Each begin issues a fresh state.
	state2, _ := flow.Begin()
	assert.NotEqual(t, state, state2)
}

func TestFlow_Callback(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(2 * time.Hour)
	source := &fakeTokenSource{
		exchangeToken: &ebay.UserToken{
			AccessToken:  "v^1.1#access",
			RefreshToken: "v^1.1#refresh",
			TokenType:    "Bearer",
			ExpiresAt:    expiresAt,
		},
	}
	store := session.NewMemoryStore()
	flow := auth.NewFlow(source, store, discardLogger())

	id, err := flow.Callback(context.Background(), "st", "st", "code-1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "v^1.1#access", rec.AccessToken)
	assert.Equal(t, "v^1.1#refresh", rec.RefreshToken)
	assert.Equal(t, session.StatusAuthenticated, rec.Status)
	assert.Equal(t, expiresAt, rec.ExpiresAt)
}

func TestFlow_CallbackStateMismatch(t *testing.T) {
	t.Parallel()

	flow := auth.NewFlow(&fakeTokenSource{}, session.NewMemoryStore(), discardLogger())

	_, err := flow.Callback(context.Background(), "evil", "st", "code-1")
	assert.ErrorIs(t, err, auth.ErrStateMismatch)

	// Missing expected state rejects rather than matching empty-to-empty.
	_, err = flow.Callback(context.Background(), "", "", "code-1")
	assert.ErrorIs(t, err, auth.ErrStateMismatch)
}

func TestFlow_CallbackExchangeError(t *testing.T) {
	t.Parallel()

	source := &fakeTokenSource{exchangeErr: errors.New("invalid_grant")}
	flow := auth.NewFlow(source, session.NewMemoryStore(), discardLogger())

	_, err := flow.Callback(context.Background(), "st", "st", "bad-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestFlow_RefreshRotatesTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	rec := &session.Record{
		ID:           session.NewID(),
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Minute),
		Status:       session.StatusAuthenticated,
	}
	require.NoError(t, store.Create(ctx, rec))

	source := &fakeTokenSource{
		refreshToken: &ebay.UserToken{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			TokenType:    "Bearer",
			ExpiresAt:    time.Now().Add(2 * time.Hour),
		},
	}
	flow := auth.NewFlow(source, store, discardLogger())

	require.NoError(t, flow.Refresh(ctx, rec))

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-access", got.AccessToken)
	assert.Equal(t, "new-refresh", got.RefreshToken)
	assert.Equal(t, session.StatusAuthenticated, got.Status)
}

func TestFlow_RefreshFailureMarksExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	rec := &session.Record{
		ID:           session.NewID(),
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		ExpiresAt:    time.Now().Add(time.Minute),
		Status:       session.StatusAuthenticated,
	}
	require.NoError(t, store.Create(ctx, rec))

	source := &fakeTokenSource{refreshErr: ebay.ErrRefreshFailed}
	flow := auth.NewFlow(source, store, discardLogger())

	err := flow.Refresh(ctx, rec)
	assert.ErrorIs(t, err, ebay.ErrRefreshFailed)
	assert.Equal(t, 1, source.refreshCalls)

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StatusExpired, got.Status)
}

func TestFlow_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	flow := auth.NewFlow(&fakeTokenSource{}, store, discardLogger())

	live := &session.Record{
		ID:          session.NewID(),
		AccessToken: "t",
		ExpiresAt:   time.Now().Add(time.Hour),
		Status:      session.StatusAuthenticated,
	}
	require.NoError(t, store.Create(ctx, live))

	got, err := flow.Resolve(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StatusAuthenticated, got.Status)

	lapsed := &session.Record{
		ID:          session.NewID(),
		AccessToken: "t",
		ExpiresAt:   time.Now().Add(-time.Minute),
		Status:      session.StatusAuthenticated,
	}
	require.NoError(t, store.Create(ctx, lapsed))

	got, err = flow.Resolve(ctx, lapsed.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StatusExpired, got.Status)

	_, err = flow.Resolve(ctx, "absent")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestFlow_Logout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	flow := auth.NewFlow(&fakeTokenSource{}, store, discardLogger())

	rec := &session.Record{
		ID:          session.NewID(),
		AccessToken: "t",
		ExpiresAt:   time.Now().Add(time.Hour),
		Status:      session.StatusAuthenticated,
	}
	require.NoError(t, store.Create(ctx, rec))

	require.NoError(t, flow.Logout(ctx, rec.ID))
	_, err := store.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
