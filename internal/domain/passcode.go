package domain

import "time"

// PasscodeEntry is one live emailed passcode. At most one entry exists per
// recipient; issuing a new code overwrites the previous entry.
type PasscodeEntry struct {
	Recipient string    `json:"recipient"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

// Expired reports whether the entry's lifetime has passed at the given instant.
func (e *PasscodeEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
