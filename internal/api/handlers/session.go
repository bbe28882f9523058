package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yahuti/trade-engine/internal/auth"
	"github.com/yahuti/trade-engine/internal/session"
)

// SessionHandler reports the authentication state of the caller's session.
type SessionHandler struct {
	flow *auth.Flow
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(flow *auth.Flow) *SessionHandler {
	return &SessionHandler{flow: flow}
}

// SessionInput carries the opaque session id cookie.
type SessionInput struct {
	SessionID string `cookie:"yte_session" doc:"Opaque session id issued after eBay login"`
}

// SessionOutput is the response body for the session status endpoint.
type SessionOutput struct {
	Body struct {
		Authenticated bool       `json:"authenticated" doc:"Whether the session holds a usable token"`
		ExpiresAt     *time.Time `json:"expires_at,omitempty" doc:"Access token expiry when authenticated"`
	}
}

// GetSession reports whether the caller is authenticated. An absent or
// expired session is not an error; the client uses the payload to decide
// whether to start the consent flow.
func (h *SessionHandler) GetSession(ctx context.Context, input *SessionInput) (*SessionOutput, error) {
	out := &SessionOutput{}

	if input.SessionID == "" {
		return out, nil
	}

	rec, err := h.flow.Resolve(ctx, input.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("resolving session: " + err.Error())
	}

	if rec.Status == session.StatusAuthenticated {
		out.Body.Authenticated = true
		out.Body.ExpiresAt = &rec.ExpiresAt
	}
	return out, nil
}

// RegisterSessionRoutes registers the session status endpoint with the Huma API.
func RegisterSessionRoutes(api huma.API, h *SessionHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/session",
		Summary:     "Get session authentication state",
		Description: "Reports whether the caller's session holds a usable eBay user token.",
		Tags:        []string{"auth"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.GetSession)
}
