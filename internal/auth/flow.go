// Package auth drives the eBay user authorization-code flow against the
// session store: consent redirect, code exchange, and token refresh.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yahuti/trade-engine/internal/ebay"
	"github.com/yahuti/trade-engine/internal/metrics"
	"github.com/yahuti/trade-engine/internal/session"
)

// ErrStateMismatch is returned when the callback state does not match the
// state issued at the start of the flow.
var ErrStateMismatch = errors.New("oauth state mismatch")

// TokenSource abstracts the eBay user-token endpoints for testing.
type TokenSource interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*ebay.UserToken, error)
	Refresh(ctx context.Context, refreshToken string) (*ebay.UserToken, error)
}

// Flow implements the authorization-code flow over a session store.
type Flow struct {
	source  TokenSource
	store   session.Store
	log     *slog.Logger
	nowFunc func() time.Time
}

// NewFlow creates a Flow.
func NewFlow(source TokenSource, store session.Store, log *slog.Logger) *Flow {
	return &Flow{
		source:  source,
		store:   store,
		log:     log,
		nowFunc: time.Now,
	}
}

// Begin starts the consent flow. It returns a fresh state nonce and the eBay
// consent URL to redirect the browser to. The caller stashes the state in a
// short-lived cookie and compares it in Callback.
func (f *Flow) Begin() (state, authorizeURL string) {
	state = uuid.NewString()
	return state, f.source.AuthorizeURL(state)
}

// Callback completes the consent flow: it verifies the state, exchanges the
// code for tokens, and persists a new session. The session id is returned
// only after the record is durably stored.
func (f *Flow) Callback(ctx context.Context, gotState, wantState, code string) (string, error) {
	if wantState == "" || gotState != wantState {
		return "", ErrStateMismatch
	}

	token, err := f.source.ExchangeCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchanging authorization code: %w", err)
	}

	rec := &session.Record{
		ID:           session.NewID(),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.ExpiresAt,
		Status:       session.StatusAuthenticated,
	}
	if err := f.store.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("persisting session: %w", err)
	}

	f.log.Info("user session established",
		"session_id", rec.ID,
		"expires_at", rec.ExpiresAt,
	)
	return rec.ID, nil
}

// Refresh attempts a single token refresh for the given session. On success
// the stored tokens are rotated. On failure the session is marked expired and
// never retried; the user must re-authorize.
func (f *Flow) Refresh(ctx context.Context, rec *session.Record) error {
	token, err := f.source.Refresh(ctx, rec.RefreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()

		rec.Status = session.StatusExpired
		if updateErr := f.store.Update(ctx, rec); updateErr != nil {
			f.log.Error("marking session expired", "session_id", rec.ID, "error", updateErr)
		}
		f.log.Warn("token refresh failed, session requires re-authorization",
			"session_id", rec.ID,
			"error", err,
		)
		return err
	}

	rec.AccessToken = token.AccessToken
	rec.RefreshToken = token.RefreshToken
	rec.TokenType = token.TokenType
	rec.ExpiresAt = token.ExpiresAt
	rec.Status = session.StatusAuthenticated

	if err := f.store.Update(ctx, rec); err != nil {
		return fmt.Errorf("persisting refreshed session: %w", err)
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	f.log.Info("session token refreshed",
		"session_id", rec.ID,
		"expires_at", rec.ExpiresAt,
	)
	return nil
}

// Logout removes the session record.
func (f *Flow) Logout(ctx context.Context, id string) error {
	return f.store.Delete(ctx, id)
}

// Resolve loads the session and marks it expired if its access token has
// lapsed. Callers decide whether an expired session is an error.
func (f *Flow) Resolve(ctx context.Context, id string) (*session.Record, error) {
	rec, err := f.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if rec.Status == session.StatusAuthenticated && rec.Expired(f.nowFunc()) {
		rec.Status = session.StatusExpired
		if err := f.store.Update(ctx, rec); err != nil {
			f.log.Error("marking session expired", "session_id", rec.ID, "error", err)
		}
	}
	return rec, nil
}
