package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session id cookie set after a successful eBay login.
const CookieName = "yte_session"

// NewID generates an opaque session identifier.
func NewID() string {
	return uuid.NewString()
}

// CookieCodec reads and writes the opaque session id cookie. The cookie
// carries only the id; tokens stay in the Store.
type CookieCodec struct {
	ttl    time.Duration
	secure bool
}

// NewCookieCodec creates a codec. secure should be true in production so the
// cookie is only sent over HTTPS.
func NewCookieCodec(ttl time.Duration, secure bool) *CookieCodec {
	return &CookieCodec{ttl: ttl, secure: secure}
}

// Write sets the session cookie on the response.
func (c *CookieCodec) Write(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read extracts the session id from the request cookie. Returns an empty
// string if the cookie is absent.
func (c *CookieCodec) Read(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Clear expires the session cookie on the response.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
