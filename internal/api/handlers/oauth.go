package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yahuti/trade-engine/internal/auth"
	"github.com/yahuti/trade-engine/internal/session"
)

// stateCookie holds the OAuth state nonce between Begin and Callback.
const stateCookie = "yte_oauth_state"

// stateTTL bounds how long a pending consent flow stays valid.
const stateTTL = 10 * time.Minute

// OAuthHandler drives the eBay consent flow over HTTP redirects. The huma
// API surface is JSON-only; redirects live on plain echo routes.
type OAuthHandler struct {
	flow    *auth.Flow
	cookies *session.CookieCodec
	secure  bool
	// appURL is where the browser lands after the flow completes.
	appURL string
}

// NewOAuthHandler creates a new OAuthHandler. secure controls the Secure
// flag on the state cookie; appURL is the post-flow redirect target.
func NewOAuthHandler(flow *auth.Flow, cookies *session.CookieCodec, secure bool, appURL string) *OAuthHandler {
	if appURL == "" {
		appURL = "/"
	}
	return &OAuthHandler{flow: flow, cookies: cookies, secure: secure, appURL: appURL}
}

// Login starts the consent flow: stash a state nonce in a short-lived
// cookie and redirect the browser to the eBay consent page.
func (h *OAuthHandler) Login(c echo.Context) error {
	state, authorizeURL := h.flow.Begin()

	c.SetCookie(&http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, authorizeURL)
}

// Callback completes the consent flow. Any failure redirects back to the
// app with auth=error rather than rendering an error page.
func (h *OAuthHandler) Callback(c echo.Context) error {
	gotState := c.QueryParam("state")
	code := c.QueryParam("code")

	wantState := ""
	if cookie, err := c.Cookie(stateCookie); err == nil {
		wantState = cookie.Value
	}
	h.clearStateCookie(c)

	if code == "" {
		return c.Redirect(http.StatusFound, h.appURL+"?auth=error")
	}

	id, err := h.flow.Callback(c.Request().Context(), gotState, wantState, code)
	if err != nil {
		return c.Redirect(http.StatusFound, h.appURL+"?auth=error")
	}

	h.cookies.Write(c.Response(), id)
	return c.Redirect(http.StatusFound, h.appURL+"?auth=success")
}

// Logout deletes the session and expires the session cookie.
func (h *OAuthHandler) Logout(c echo.Context) error {
	if id := h.cookies.Read(c.Request()); id != "" {
		if err := h.flow.Logout(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "logout failed"})
		}
	}
	h.cookies.Clear(c.Response())
	return c.Redirect(http.StatusFound, h.appURL)
}

func (h *OAuthHandler) clearStateCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
