package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAppendLoadOrder(t *testing.T) {
	s := NewLogStore(t.TempDir())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		in := &domain.Interaction{
			ID:         fmt.Sprintf("id-%d", i),
			Timestamp:  time.Now().UTC(),
			Question:   fmt.Sprintf("q%d", i),
			Answer:     fmt.Sprintf("a%d", i),
			Confidence: 0.85,
		}
		require.NoError(t, s.Append(ctx, in))
	}

	entries, err := s.Load(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("id-%d", i), e.ID)
	}

	// Idempotent load: a second load without intervening appends is identical.
	again, err := s.Load(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, entries, again)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestLogLoadLimitReturnsMostRecentOldestFirst(t *testing.T) {
	s := NewLogStore(t.TempDir())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, s.Append(ctx, &domain.Interaction{ID: fmt.Sprintf("id-%d", i)}))
	}

	entries, err := s.Load(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "id-7", entries[0].ID)
	assert.Equal(t, "id-9", entries[2].ID)
}

func TestLogMissingFileLoadsEmpty(t *testing.T) {
	s := NewLogStore(filepath.Join(t.TempDir(), "never-created"))
	ctx := context.Background()

	entries, err := s.Load(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLogSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	s := NewLogStore(dir)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, &domain.Interaction{ID: "a"}))

	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("\n\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, s.Append(ctx, &domain.Interaction{ID: "b"}))

	entries, err := s.Load(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
