package session

import (
	"net/http"
	"time"
)

const CookieName = "user_session"

// FromRequest returns the session id carried by the request, or "".
func FromRequest(req *http.Request) string {
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// NewCookie binds the client to the session id for ttl.
func NewCookie(id string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
