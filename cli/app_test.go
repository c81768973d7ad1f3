package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-console/api"
	"library-console/config"
	"library-console/session"
)

func testApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	client, err := api.New(api.Config{BaseURL: "http://localhost:0", Logger: log})
	require.NoError(t, err)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	manager := session.NewManager(store, client.Auth(), log)
	client.SetTokenSource(manager)

	var out bytes.Buffer
	app := &App{
		Config:  config.Config{ReportDir: t.TempDir()},
		API:     client,
		Session: manager,
		Log:     log,
		Out:     &out,
	}
	return app, &out
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "exactly-10", truncateString("exactly-10", 10))
	assert.Equal(t, "a long ...", truncateString("a long title here", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))

	// Multibyte titles cut on rune boundaries, never mid-character.
	assert.Equal(t, "Crè...", truncateString("Crème brûlée à la carte", 6))
	assert.Equal(t, "日本語のタイ...", truncateString("日本語のタイトルです", 9))
	assert.Equal(t, "日本語", truncateString("日本語", 9))
}

func TestReportPath(t *testing.T) {
	app, _ := testApp(t)

	assert.Equal(t, "custom.pdf", app.reportPath("custom.pdf", "Default.pdf"))
	assert.Equal(t, filepath.Join(app.Config.ReportDir, "Default.pdf"), app.reportPath("", "Default.pdf"))
}

func TestSurfaceUnauthorizedDemotesSession(t *testing.T) {
	app, _ := testApp(t)

	err := app.surface(&api.Error{Kind: api.KindUnauthorized, Status: 401, Message: "Token has expired"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")
	assert.Equal(t, session.Unauthenticated, app.Session.State())
}

func TestSurfacePassesOtherErrorsThrough(t *testing.T) {
	app, _ := testApp(t)

	rejected := &api.Error{Kind: api.KindRejected, Status: 400, Message: "Title is required"}
	assert.Equal(t, rejected, app.surface(rejected))
	assert.NoError(t, app.surface(nil))
}

func TestRenderTransactionsStatus(t *testing.T) {
	app, out := testApp(t)

	now := time.Now()
	ret := api.Timestamp{Time: now.Add(-24 * time.Hour)}
	fee := 4.5
	ts := []api.Transaction{
		{ID: 1, Book: &api.Book{Title: "Dune"}, Member: &api.Member{Name: "Alice"},
			IssueDate: api.Timestamp{Time: now.Add(-3 * 24 * time.Hour)}},
		{ID: 2, Book: &api.Book{Title: "Emma"}, Member: &api.Member{Name: "Bob"},
			IssueDate: api.Timestamp{Time: now.Add(-20 * 24 * time.Hour)}},
		{ID: 3, Book: &api.Book{Title: "Hamlet"}, Member: &api.Member{Name: "Carol"},
			IssueDate: api.Timestamp{Time: now.Add(-10 * 24 * time.Hour)}, ReturnDate: &ret, RentFee: &fee},
	}

	app.renderTransactions(ts)

	got := out.String()
	assert.Contains(t, got, "open")
	assert.Contains(t, got, "overdue (6d)")
	assert.Contains(t, got, "returned")
	assert.Contains(t, got, "KES 4.50")
}
