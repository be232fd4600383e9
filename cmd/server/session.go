package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const sessionCookieName = "breakeven_session"

// sessionService hands out and verifies anonymous browser sessions. There is
// no login: the signed cookie only ties a browser to its scratchpad of
// scenario inputs, and the HMAC keeps ids from being forged or enumerated.
type sessionService struct {
	secret []byte
}

func newSessionService(secret string) *sessionService {
	return &sessionService{secret: []byte(secret)}
}

// ensure returns the session id from a valid cookie, or mints a fresh one and
// sets the cookie.
func (s *sessionService) ensure(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if id, ok := s.verifySessionValue(cookie.Value); ok {
			return id
		}
	}

	id := uuid.NewString()
	s.setSessionCookie(w, id)
	return id
}

func (s *sessionService) createSessionValue(id string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(id))
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return payload + "." + signature
}

func (s *sessionService) verifySessionValue(value string) (string, bool) {
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return "", false
	}

	payload := parts[0]
	signature := parts[1]

	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(provided, expected) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	if len(decoded) == 0 {
		return "", false
	}

	return string(decoded), true
}

func (s *sessionService) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.createSessionValue(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
