package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sitecrew/auth-api/internal/domain"
)

// SessionRepo is an in-memory session table. Sessions are ephemeral by
// design: the service is the only holder of authenticated state and a
// restart simply forces clients back through the passcode flow.
type SessionRepo struct {
	mu        sync.RWMutex
	byID      map[string]*domain.Session
	byRefresh map[string]string // refresh token -> session id
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		byID:      make(map[string]*domain.Session),
		byRefresh: make(map[string]string),
	}
}

func (r *SessionRepo) Put(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.byID[s.SessionID] = &cp
	r.byRefresh[s.RefreshToken] = s.SessionID
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (r *SessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sid, ok := r.byRefresh[refreshToken]
	if !ok {
		return nil, fmt.Errorf("refresh token: %w", domain.ErrNotFound)
	}
	s := r.byID[sid]
	cp := *s
	return &cp, nil
}

// RotateRefreshToken atomically replaces the session's refresh token and expiry.
func (r *SessionRepo) RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	delete(r.byRefresh, s.RefreshToken)
	s.RefreshToken = newToken
	s.RefreshExpiresAt = newExpiry
	s.UpdatedAt = time.Now().UTC()
	r.byRefresh[newToken] = sessionID
	return nil
}

// Disable marks the session logged out. The record is kept so a reused
// bearer token maps to a disabled session rather than an unknown one.
func (r *SessionRepo) Disable(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	s.Enable = false
	s.UpdatedAt = time.Now().UTC()
	delete(r.byRefresh, s.RefreshToken)
	return nil
}

// ListActive returns all currently enabled sessions.
func (r *SessionRepo) ListActive(ctx context.Context) ([]domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Session
	for _, s := range r.byID {
		if s.Enable {
			out = append(out, *s)
		}
	}
	return out, nil
}
