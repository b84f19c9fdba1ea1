package session

import (
	"context"
	"fmt"
	"time"

	"github.com/sitecrew/auth-api/internal/domain"
	"github.com/sitecrew/auth-api/internal/pkg/id"
	pkgtoken "github.com/sitecrew/auth-api/internal/pkg/token"
)

// Repository is the minimal session storage the service requires.
type Repository interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
	Disable(ctx context.Context, sessionID string) error
	ListActive(ctx context.Context) ([]domain.Session, error)
}

// Signer issues bearer tokens for a session.
type Signer interface {
	Sign(userID, email, position, sessionID string) (string, error)
}

type LoginResult struct {
	Bearer       string
	RefreshToken string
	Session      *domain.Session
}

type Service interface {
	// Promote turns a passcode-verified account into an authenticated session.
	Promote(ctx context.Context, acct *domain.Account) (*LoginResult, error)
	Current(ctx context.Context, sessionID string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Refresh(ctx context.Context, refreshToken string) (bearer, newRefreshToken string, err error)
	ListActive(ctx context.Context) ([]domain.Session, error)
}

type service struct {
	repo            Repository
	signer          Signer
	refreshTokenDur time.Duration
}

func NewService(repo Repository, signer Signer, refreshTokenDur time.Duration) Service {
	return &service{repo: repo, signer: signer, refreshTokenDur: refreshTokenDur}
}

func (s *service) Promote(ctx context.Context, acct *domain.Account) (*LoginResult, error) {
	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		UserID:           acct.UserID,
		Enable:           true,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.refreshTokenDur).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
		User:             acct,
	}
	if err := s.repo.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.signer.Sign(acct.UserID, acct.Email, acct.Position, sess.SessionID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Bearer: bearer, RefreshToken: refreshToken, Session: sess}, nil
}

func (s *service) Current(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Enable {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	return sess, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.repo.Disable(ctx, sessionID)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	sess, err := s.repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	if !sess.Enable {
		return "", "", fmt.Errorf("session disabled: %w", domain.ErrUnauthorized)
	}
	if sess.RefreshExpiresAt < time.Now().Unix() {
		return "", "", fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}
	newToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return "", "", err
	}
	newExpiry := time.Now().Add(s.refreshTokenDur).Unix()
	if err := s.repo.RotateRefreshToken(ctx, sess.SessionID, newToken, newExpiry); err != nil {
		return "", "", err
	}
	var email, position string
	if sess.User != nil {
		email, position = sess.User.Email, sess.User.Position
	}
	bearer, err := s.signer.Sign(sess.UserID, email, position, sess.SessionID)
	if err != nil {
		return "", "", err
	}
	return bearer, newToken, nil
}

func (s *service) ListActive(ctx context.Context) ([]domain.Session, error) {
	return s.repo.ListActive(ctx)
}
