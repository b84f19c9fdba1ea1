package opsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sitecrew/auth-api/internal/config"
	"github.com/sitecrew/auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(&config.Config{OpsAPIBaseURL: url})
}

func TestLogin_Success(t *testing.T) {
	var gotCreds Credentials
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreds))
		_ = json.NewEncoder(w).Encode(domain.Account{
			UserID:   "u1",
			Name:     "Ana",
			LastName: "Reyes",
			Email:    "ana@sitecrew.app",
			Position: "supervisor",
		})
	}))
	defer srv.Close()

	acct, err := newTestClient(srv.URL).Login(context.Background(), Credentials{
		Email: "ana@sitecrew.app", Password: "secret", UserType: "supervisor",
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", acct.UserID)
	assert.Equal(t, "ana@sitecrew.app", acct.Email)
	assert.Equal(t, "ana@sitecrew.app", gotCreds.Email)
	assert.Equal(t, "supervisor", gotCreds.UserType)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), Credentials{Email: "x", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_MissingEmailInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), Credentials{Email: "x", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
