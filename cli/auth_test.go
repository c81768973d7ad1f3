package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-console/api"
	"library-console/session"
)

// appAgainst wires an App to a live fake backend so commands can run end
// to end; stdin is the given input.
func appAgainst(t *testing.T, handler http.HandlerFunc, stdin string) (*App, *session.Store, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	client, err := api.New(api.Config{BaseURL: srv.URL, Logger: log})
	require.NoError(t, err)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	manager := session.NewManager(store, client.Auth(), log)
	client.SetTokenSource(manager)

	var out bytes.Buffer
	app := &App{
		API:     client,
		Session: manager,
		Log:     log,
		In:      strings.NewReader(stdin),
		Out:     &out,
	}
	return app, store, &out
}

func TestLoginBadCredentialsShowsBackendMessage(t *testing.T) {
	app, store, _ := appAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid username or password"}`))
	}, "wrongpass\n")

	// A previous session on disk must survive a mistyped password.
	require.NoError(t, store.Save("earlier-token"))

	cmd := NewRootCmd(app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"login", "-u", "admin"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", err.Error())

	stored, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Equal(t, "earlier-token", stored)
}

func TestLoginSuccessPrintsUser(t *testing.T) {
	app, store, out := appAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			w.Write([]byte(`{"access_token":"tok"}`))
		case "/profile":
			w.Write([]byte(`{"username":"admin"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, "rightpass\n")

	cmd := NewRootCmd(app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"login", "-u", "admin"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Logged in as admin")

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", stored)
}

func TestLoginUnverifiedEmailMessage(t *testing.T) {
	app, store, out := appAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Please verify your email before logging in."}`))
	}, "rightpass\n")

	cmd := NewRootCmd(app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"login", "-u", "admin"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "not verified")

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}
