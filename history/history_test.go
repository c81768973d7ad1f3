package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "nested", "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := tempLog(t)

	require.NoError(t, l.Record("admin", "create", "book", 1, "'Dune'"))
	require.NoError(t, l.Record("admin", "issue", "transaction", 9, "book=1 member=3"))

	entries, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "issue", entries[0].Action)
	assert.Equal(t, int64(9), entries[0].EntityID)
	assert.Equal(t, "create", entries[1].Action)
	assert.Equal(t, "'Dune'", entries[1].Detail)
	assert.WithinDuration(t, time.Now(), entries[0].OccurredAt, time.Minute)
}

func TestRecentLimit(t *testing.T) {
	l := tempLog(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Record("admin", "create", "book", int64(i+1), fmt.Sprintf("book %d", i+1)))
	}

	entries, err := l.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = l.Recent(0)
	require.NoError(t, err)
	assert.Len(t, entries, 5, "non-positive limit falls back to the default")
}

func TestRecentEmpty(t *testing.T) {
	l := tempLog(t)
	entries, err := l.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.db")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record("admin", "delete", "member", 4, ""))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()

	entries, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "delete", entries[0].Action)
}
