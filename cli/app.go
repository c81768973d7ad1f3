// Package cli implements the console commands. Commands fetch fresh data
// from the backend, render plain tables, and after every mutation re-fetch
// the authoritative list before rendering again.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"library-console/api"
	"library-console/config"
	"library-console/history"
	"library-console/session"
)

// App carries the wired dependencies every command needs. There is no
// global state: main constructs one App and hands it to the command tree.
type App struct {
	Config  config.Config
	API     *api.Client
	Session *session.Manager
	History *history.Log
	Log     *logrus.Logger
	In      io.Reader
	Out     io.Writer
}

// requireAuth resolves the stored session and fails when nobody is logged
// in. Called by every command that talks to a protected endpoint.
func (a *App) requireAuth(ctx context.Context) error {
	if err := a.Session.Resolve(ctx); err != nil {
		return err
	}
	if a.Session.State() != session.Authenticated {
		return fmt.Errorf("%w; run 'login' first", session.ErrNotAuthenticated)
	}
	return nil
}

// surface converts a client error into the message shown to the user. An
// unauthorized response additionally demotes the session so the next
// command starts clean.
func (a *App) surface(err error) error {
	if err == nil {
		return nil
	}
	if api.IsUnauthorized(err) {
		a.Session.Demote()
		return fmt.Errorf("session expired, please log in again")
	}
	return err
}

// actor names the current user for the activity log.
func (a *App) actor() string {
	if u := a.Session.User(); u != nil {
		return u.Username
	}
	return "unknown"
}

// record appends to the local activity log. Logging failures are reported
// but never fail the command that already succeeded against the backend.
func (a *App) record(action, entity string, entityID int64, detail string) {
	if a.History == nil {
		return
	}
	if err := a.History.Record(a.actor(), action, entity, entityID, detail); err != nil {
		a.Log.WithError(err).Warn("could not record activity")
	}
}

// reportPath resolves an output filename against the configured report
// directory unless the user gave an explicit path.
func (a *App) reportPath(out, defaultName string) string {
	if out != "" {
		return out
	}
	return filepath.Join(a.Config.ReportDir, defaultName)
}

func (a *App) writeReport(path string, write func(io.Writer) error) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.Out, args...)
}

// prompt reads one line of input with a label.
func prompt(sc *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

// promptDefault reads one line, keeping def when the user just presses
// Enter.
func promptDefault(sc *bufio.Scanner, out io.Writer, label, def string) (string, bool) {
	v, ok := prompt(sc, out, fmt.Sprintf("%s [%s]: ", label, def))
	if !ok {
		return "", false
	}
	if v == "" {
		return def, true
	}
	return v, true
}

// readPassword reads a password with masking when stdin is a terminal, and
// falls back to a plain line read otherwise (piped input).
func readPassword(sc *bufio.Scanner, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	if term.IsTerminal(int(syscall.Stdin)) {
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", err
		}
		fmt.Fprintln(out)
		return strings.TrimSpace(string(bytePassword)), nil
	}
	if !sc.Scan() {
		return "", fmt.Errorf("no password provided")
	}
	return strings.TrimSpace(sc.Text()), nil
}

func truncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(r[:maxLength])
	}
	return string(r[:maxLength-3]) + "..."
}
