package verification

import (
	"sync"
	"time"

	"github.com/sitecrew/auth-api/internal/domain"
)

// Store is the process-wide passcode table, keyed by recipient email.
// At most one live passcode exists per recipient; Put overwrites. Verify is
// a check-then-delete sequence and must stay atomic to keep passcodes
// single-use, hence the mutex around every operation.
//
// Expiry is enforced lazily: an expired entry is removed the moment Verify
// or Peek touches it. The service's periodic sweep bounds the growth left
// behind by recipients who request codes and never verify.
type Store struct {
	mu          sync.Mutex
	entries     map[string]*domain.PasscodeEntry
	lifetime    time.Duration
	maxAttempts int
	now         func() time.Time
}

// NewStore creates a passcode store. maxAttempts <= 0 disables the
// failed-attempt cap.
func NewStore(lifetime time.Duration, maxAttempts int) *Store {
	return &Store{
		entries:     make(map[string]*domain.PasscodeEntry),
		lifetime:    lifetime,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Put records a fresh passcode for recipient, replacing any pending one.
// Overwriting is what makes resend safe: the previous code can no longer be
// replayed once a new one is issued.
func (s *Store) Put(recipient, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.entries[recipient] = &domain.PasscodeEntry{
		Recipient: recipient,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.lifetime),
	}
}

// Verify checks the supplied code against the pending entry for recipient.
//
// Returns nil and consumes the entry on a match. Otherwise:
//   - domain.ErrNoPendingCode: nothing pending (never requested or consumed)
//   - domain.ErrPasscodeExpired: entry outlived its lifetime; deleted before
//     the codes were ever compared
//   - domain.ErrTooManyAttempts: mismatch cap reached; entry deleted
//   - domain.ErrPasscodeMismatch: wrong code, entry retained for retry
func (s *Store) Verify(recipient, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[recipient]
	if !ok {
		return domain.ErrNoPendingCode
	}
	if e.Expired(s.now()) {
		delete(s.entries, recipient)
		return domain.ErrPasscodeExpired
	}
	if e.Code != code {
		e.Attempts++
		if s.maxAttempts > 0 && e.Attempts >= s.maxAttempts {
			delete(s.entries, recipient)
			return domain.ErrTooManyAttempts
		}
		return domain.ErrPasscodeMismatch
	}
	delete(s.entries, recipient)
	return nil
}

// Peek returns the pending unexpired code for recipient without consuming
// it. Reachable only through the dev-only route; the router never registers
// that route in production.
func (s *Store) Peek(recipient string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[recipient]
	if !ok {
		return "", false
	}
	if e.Expired(s.now()) {
		delete(s.entries, recipient)
		return "", false
	}
	return e.Code, true
}

// SweepExpired removes every expired entry and reports how many were removed.
func (s *Store) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for recipient, e := range s.entries {
		if e.Expired(now) {
			delete(s.entries, recipient)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
