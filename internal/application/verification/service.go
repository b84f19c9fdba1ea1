package verification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sitecrew/auth-api/internal/application/session"
	"github.com/sitecrew/auth-api/internal/domain"
	"github.com/sitecrew/auth-api/internal/infrastructure/mail"
	"github.com/sitecrew/auth-api/internal/infrastructure/opsapi"
	"github.com/sitecrew/auth-api/internal/pkg/passcode"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"user_type"`
}

// PendingVerification is the handoff the mobile client needs to render the
// passcode screen and later build the session without a second round-trip.
type PendingVerification struct {
	Email        string `json:"email"`
	UserType     string `json:"user_type"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	UserLastName string `json:"user_last_name"`
	UserPosition string `json:"user_position"`
	ResendIn     int    `json:"resend_in"` // seconds until resend is allowed
}

// AccountClient validates credentials against the operations API.
type AccountClient interface {
	Login(ctx context.Context, creds opsapi.Credentials) (*domain.Account, error)
}

type Service interface {
	// Login validates credentials remotely, then issues and emails a passcode.
	Login(ctx context.Context, req LoginRequest) (*PendingVerification, error)
	// Submit verifies the supplied passcode and, on success, promotes the
	// pending account to an authenticated session.
	Submit(ctx context.Context, email, code string) (*session.LoginResult, error)
	// Resend reissues the passcode once the cooldown has elapsed.
	Resend(ctx context.Context, email string) (*PendingVerification, error)
	// Sweeper runs housekeeping every interval; run as a goroutine from main.
	Sweeper(interval time.Duration)
}

type ServiceDeps struct {
	Store    *Store
	Accounts AccountClient
	Mailer   mail.Mailer
	Sessions session.Service
	Cooldown time.Duration
}

type pendingState struct {
	account  *domain.Account
	userType string
	resendAt time.Time
	// abandonAt is when the pending login itself is forgotten. It outlives
	// the passcode so an expired code can still be resent without forcing a
	// fresh credential check.
	abandonAt time.Time
}

type service struct {
	store    *Store
	accounts AccountClient
	mailer   mail.Mailer
	sessions session.Service
	cooldown time.Duration

	mu      sync.Mutex
	pending map[string]*pendingState
	now     func() time.Time
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:    deps.Store,
		accounts: deps.Accounts,
		mailer:   deps.Mailer,
		sessions: deps.Sessions,
		cooldown: deps.Cooldown,
		pending:  make(map[string]*pendingState),
		now:      time.Now,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*PendingVerification, error) {
	acct, err := s.accounts.Login(ctx, opsapi.Credentials{
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
	})
	if err != nil {
		return nil, err
	}
	return s.begin(acct, req.UserType)
}

// begin generates a fresh passcode, records it, and dispatches the email in
// the background. Mail failures are logged and swallowed: delivery is
// best-effort and the code stays independently visible through the dev route.
func (s *service) begin(acct *domain.Account, userType string) (*PendingVerification, error) {
	code, err := passcode.Generate()
	if err != nil {
		return nil, err
	}
	s.store.Put(acct.Email, code)

	now := s.now()
	s.mu.Lock()
	s.pending[acct.Email] = &pendingState{
		account:   acct,
		userType:  userType,
		resendAt:  now.Add(s.cooldown),
		abandonAt: now.Add(2 * s.store.lifetime),
	}
	s.mu.Unlock()

	go func() {
		subject := "Your SiteCrew verification code"
		text := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
			code, int(s.store.lifetime.Minutes()))
		html := fmt.Sprintf("<p>Your verification code is <strong>%s</strong>. It expires in %d minutes.</p>",
			code, int(s.store.lifetime.Minutes()))
		if err := s.mailer.Send(acct.Email, subject, text, html); err != nil {
			slog.Warn("passcode email delivery failed", "recipient", acct.Email, "err", err)
		}
	}()

	return &PendingVerification{
		Email:        acct.Email,
		UserType:     userType,
		UserID:       acct.UserID,
		UserName:     acct.Name,
		UserLastName: acct.LastName,
		UserPosition: acct.Position,
		ResendIn:     int(s.cooldown.Seconds()),
	}, nil
}

func (s *service) Submit(ctx context.Context, email, code string) (*session.LoginResult, error) {
	if err := s.store.Verify(email, code); err != nil {
		// The reason stays internal; callers collapse these into one message.
		slog.Info("passcode rejected", "recipient", email, "reason", err)
		return nil, err
	}

	s.mu.Lock()
	p, ok := s.pending[email]
	delete(s.pending, email)
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNoPendingCode
	}
	return s.sessions.Promote(ctx, p.account)
}

func (s *service) Resend(ctx context.Context, email string) (*PendingVerification, error) {
	s.mu.Lock()
	p, ok := s.pending[email]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNoPendingCode
	}
	now := s.now()
	if now.Before(p.resendAt) {
		remaining := int(p.resendAt.Sub(now).Seconds())
		s.mu.Unlock()
		return nil, fmt.Errorf("resend available in %ds: %w", remaining, domain.ErrCooldownActive)
	}
	acct, userType := p.account, p.userType
	s.mu.Unlock()

	// Last write wins: the new code overwrites the old one in the store, so
	// concurrent resends are safe regardless of arrival order.
	return s.begin(acct, userType)
}

func (s *service) Sweeper(interval time.Duration) {
	for {
		time.Sleep(interval)
		removed := s.store.SweepExpired()
		abandoned := s.sweepPending()
		if removed > 0 || abandoned > 0 {
			slog.Debug("verification sweep", "expired_codes", removed, "abandoned_logins", abandoned)
		}
	}
}

func (s *service) sweepPending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for email, p := range s.pending {
		if now.After(p.abandonAt) {
			delete(s.pending, email)
			removed++
		}
	}
	return removed
}
