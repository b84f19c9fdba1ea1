package session

import (
	"context"
	"testing"
	"time"

	"github.com/sitecrew/auth-api/internal/domain"
	"github.com/sitecrew/auth-api/internal/infrastructure/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, email, position, sessionID string) (string, error) {
	args := m.Called(userID, email, position, sessionID)
	return args.String(0), args.Error(1)
}

var acct = &domain.Account{
	UserID:   "u1",
	Name:     "Ana",
	LastName: "Reyes",
	Email:    "ana@sitecrew.app",
	Position: domain.PositionAdmin,
}

func newTestService(t *testing.T) (Service, *mockSigner) {
	t.Helper()
	signer := &mockSigner{}
	return NewService(memstore.NewSessionRepo(), signer, 30*24*time.Hour), signer
}

func TestPromote_CreatesEnabledSession(t *testing.T) {
	svc, signer := newTestService(t)
	signer.On("Sign", "u1", "ana@sitecrew.app", domain.PositionAdmin, mock.Anything).Return("bearer", nil)

	result, err := svc.Promote(context.Background(), acct)

	require.NoError(t, err)
	assert.Equal(t, "bearer", result.Bearer)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.Session.Enable)
	assert.Equal(t, "u1", result.Session.UserID)

	got, err := svc.Current(context.Background(), result.Session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, acct.Email, got.User.Email)
}

func TestCurrent_UnknownSession(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Current(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogout_DisablesSession(t *testing.T) {
	svc, signer := newTestService(t)
	signer.On("Sign", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("bearer", nil)

	result, err := svc.Promote(context.Background(), acct)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.Session.SessionID))

	_, err = svc.Current(context.Background(), result.Session.SessionID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// A logged-out session cannot be refreshed either.
	_, _, err = svc.Refresh(context.Background(), result.RefreshToken)
	require.Error(t, err)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, signer := newTestService(t)
	signer.On("Sign", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("bearer", nil)

	result, err := svc.Promote(context.Background(), acct)
	require.NoError(t, err)

	bearer, newToken, err := svc.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "bearer", bearer)
	assert.NotEqual(t, result.RefreshToken, newToken)

	// The old token is invalid after rotation.
	_, _, err = svc.Refresh(context.Background(), result.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = svc.Refresh(context.Background(), newToken)
	require.NoError(t, err)
}

func TestListActive_ExcludesDisabled(t *testing.T) {
	svc, signer := newTestService(t)
	signer.On("Sign", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("bearer", nil)

	first, err := svc.Promote(context.Background(), acct)
	require.NoError(t, err)
	_, err = svc.Promote(context.Background(), &domain.Account{
		UserID: "u2", Email: "leo@sitecrew.app", Position: domain.PositionWorker,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), first.Session.SessionID))

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "u2", active[0].UserID)
}
