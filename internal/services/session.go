package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/AnshRaj112/aih-backend/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionCookieName is the cookie carrying the signed session id
	SessionCookieName = "aih_session"
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"

	fieldUserID   = "user_id"
	fieldUsername = "username"
)

// SessionManager keeps login state in Redis, keyed by an opaque id that the
// client holds in a signed cookie. A session belongs to one client, not to a
// user: logging in elsewhere does not end it.
type SessionManager struct {
	rdb    redis.Cmdable
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessionManager(rdb redis.Cmdable, secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		rdb:    rdb,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Start replaces whatever session the request carries with a fresh one for
// user and sets the cookie.
func (m *SessionManager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request, user *models.UserSummary) error {
	if id, ok := m.sessionID(r); ok {
		if err := m.rdb.Del(ctx, SessionKeyPrefix+id).Err(); err != nil {
			log.Printf("failed to drop previous session: %v", err)
		}
	}

	id := uuid.NewString()
	key := SessionKeyPrefix + id

	_, err := m.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldUserID, user.ID, fieldUsername, user.DisplayName())
		pipe.Expire(ctx, key, m.ttl)
		return nil
	})
	if err != nil {
		return err
	}

	http.SetCookie(w, m.cookie(id+"."+m.sign(id), int(m.ttl.Seconds())))
	return nil
}

// End drops the session and expires the cookie. It is a no-op for requests
// without a session.
func (m *SessionManager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, m.cookie("", -1))

	id, ok := m.sessionID(r)
	if !ok {
		return nil
	}
	return m.rdb.Del(ctx, SessionKeyPrefix+id).Err()
}

// CurrentUser returns the display name of the logged-in user. Store errors
// are logged and reported as "no session".
func (m *SessionManager) CurrentUser(ctx context.Context, r *http.Request) (string, bool) {
	id, ok := m.sessionID(r)
	if !ok {
		return "", false
	}

	name, err := m.rdb.HGet(ctx, SessionKeyPrefix+id, fieldUsername).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("session lookup failed: %v", err)
		}
		return "", false
	}
	if name == "" {
		return "", false
	}
	return name, true
}

// sessionID extracts the id from a correctly signed cookie.
func (m *SessionManager) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	id, sig, found := strings.Cut(c.Value, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(id))) {
		return "", false
	}
	return id, true
}

func (m *SessionManager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if m.secure {
		// Cross-site frontends need None, which browsers only accept with Secure.
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
