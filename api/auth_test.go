package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginReturnsToken(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"access_token":"tok-abc"}`))
	})

	out, err := c.Auth().Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", out.Token)
	assert.False(t, out.NeedsVerification)
	assert.Equal(t, map[string]string{"username": "admin", "password": "secret"}, gotBody)
}

func TestLoginUnverifiedAccount(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Please verify your email before logging in."}`))
	})

	out, err := c.Auth().Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.True(t, out.NeedsVerification)
	assert.Empty(t, out.Token)
}

func TestLoginBadCredentials(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid username or password"}`))
	})

	_, err := c.Auth().Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Invalid username or password", err.Error())
}

func TestProfile(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/profile", r.URL.Path)
		w.Write([]byte(`{"username":"admin","role":"librarian"}`))
	})

	p, err := c.Auth().Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", p.Username)
	assert.Equal(t, "librarian", p.Role)
}

func TestVerifyEmail(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify-email", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"message":"Email verified successfully"}`))
	})

	msg, err := c.Auth().VerifyEmail(context.Background(), "a@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "Email verified successfully", msg)
	assert.Equal(t, "123456", gotBody["verification_code"])
}
