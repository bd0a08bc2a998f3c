package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrInvalidToken = errors.New("invalid session token")
)

// Session is the server side record behind a session cookie.
type Session struct {
	ID             string    `json:"id"`
	UserID         uint      `json:"user_id"`
	LastAnalysisID uint      `json:"last_analysis_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Store keeps session records until they expire.
type Store interface {
	// Save writes s and keeps it until s.ExpiresAt.
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every session of userID.
	DeleteByUser(ctx context.Context, userID uint) error
	Ping(ctx context.Context) error
}
