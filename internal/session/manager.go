package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "personal-color"

type Options struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// Manager issues signed session tokens backed by a Store record. A token is
// only accepted while its record exists, so deleting the record revokes it.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	cookie string
	secure bool
	now    func() time.Time
}

func NewManager(store Store, opts Options) *Manager {
	name := opts.CookieName
	if name == "" {
		name = "PC_SESSION"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		store:  store,
		secret: []byte(opts.Secret),
		ttl:    ttl,
		cookie: name,
		secure: opts.CookieSecure,
		now:    time.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookie
}

// Issue creates a session for userID and returns its signed token.
func (m *Manager) Issue(ctx context.Context, userID uint) (string, *Session, error) {
	now := m.now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    issuer,
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		_ = m.store.Delete(ctx, sess.ID)
		return "", nil, fmt.Errorf("sign session: %w", err)
	}

	return token, sess, nil
}

// Resolve verifies token and returns the live session behind it.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}

	sess, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if strconv.FormatUint(uint64(sess.UserID), 10) != claims.Subject {
		return nil, ErrInvalidToken
	}
	return sess, nil
}

// Revoke deletes the session record. Unknown ids are ignored.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Delete(ctx, sessionID)
}

// RevokeUser ends every session of userID, e.g. after deactivation.
func (m *Manager) RevokeUser(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return m.store.DeleteByUser(ctx, userID)
}

// RevokeToken revokes the session behind token when it is still valid.
func (m *Manager) RevokeToken(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.Revoke(ctx, claims.ID)
}

// SetLastAnalysis remembers the most recent analysis produced in a session.
func (m *Manager) SetLastAnalysis(ctx context.Context, sessionID string, analysisID uint) error {
	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.LastAnalysisID = analysisID
	return m.store.Save(ctx, sess)
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ===============================
// HTTP transport
// ===============================

// TokenFromRequest reads the session cookie, falling back to a Bearer header.
func (m *Manager) TokenFromRequest(r *http.Request) string {
	if ck, err := r.Cookie(m.cookie); err == nil && ck.Value != "" {
		return ck.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
