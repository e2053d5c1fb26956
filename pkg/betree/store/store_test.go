package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/betree/pkg/betree/filter"
)

// forEachStore runs a subtest against both implementations.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		s := NewMemoryStore()
		defer s.Close()
		fn(t, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLiteStore(":memory:")
		require.NoError(t, err)
		defer s.Close()
		fn(t, s)
	})
}

func TestSaveLoad(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		id, err := s.Save("big", "size > 1000")
		require.NoError(t, err)
		require.NoError(t, uuid.Validate(id))

		saved, err := s.Load(id)
		require.NoError(t, err)
		assert.Equal(t, id, saved.ID)
		assert.Equal(t, "big", saved.Name)
		assert.Equal(t, "size > 1000", saved.Source)
		assert.False(t, saved.CreatedAt.IsZero())
	})
}

func TestLoad_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.Load(uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLoadByName(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.Save("big", "size > 1000")
		require.NoError(t, err)
		id2, err := s.Save("big", "size > 2000")
		require.NoError(t, err)
		_, err = s.Save("other", "remote")
		require.NoError(t, err)

		// The latest save under a name wins.
		saved, err := s.LoadByName("big")
		require.NoError(t, err)
		assert.Equal(t, id2, saved.ID)
		assert.Equal(t, "size > 2000", saved.Source)

		_, err = s.LoadByName("nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestList(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		out, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, out)

		_, err = s.Save("a", "x > 1")
		require.NoError(t, err)
		_, err = s.Save("b", "x > 2")
		require.NoError(t, err)

		out, err = s.List()
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].Name)
		assert.Equal(t, "b", out[1].Name)
	})
}

func TestDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		id, err := s.Save("a", "x > 1")
		require.NoError(t, err)

		require.NoError(t, s.Delete(id))
		_, err = s.Load(id)
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting an absent id is a no-op.
		assert.NoError(t, s.Delete(id))
	})
}

func TestClosed(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Close())

		_, err := s.Save("a", "x > 1")
		assert.ErrorIs(t, err, ErrStoreClosed)
		_, err = s.Load("id")
		assert.ErrorIs(t, err, ErrStoreClosed)
		_, err = s.LoadByName("a")
		assert.ErrorIs(t, err, ErrStoreClosed)
		_, err = s.List()
		assert.ErrorIs(t, err, ErrStoreClosed)
		assert.ErrorIs(t, s.Delete("id"), ErrStoreClosed)

		// Close is idempotent.
		assert.NoError(t, s.Close())
	})
}

// TestRoundTripCompile: a stored source recompiles into a working filter.
func TestRoundTripCompile(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		id, err := s.Save("remote-xfs", "type == xfs & remote")
		require.NoError(t, err)

		saved, err := s.Load(id)
		require.NoError(t, err)

		f, err := filter.Compile(saved.Source)
		require.NoError(t, err)

		got, err := f.Match(map[string]any{"type": "xfs", "remote": true})
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestSQLiteStore_FilePersistence(t *testing.T) {
	path := t.TempDir() + "/filters.db"

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	id, err := s.Save("big", "size > 1000")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopen and read back.
	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	saved, err := s.Load(id)
	require.NoError(t, err)
	assert.Equal(t, "size > 1000", saved.Source)
}

func TestMemoryStore_Len(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	assert.Equal(t, 0, s.Len())
	_, err := s.Save("a", "x > 1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}
