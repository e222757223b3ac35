package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ MemoryStore }

func (f *failingStore) Save(string) error { return errors.New("disk full") }

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func TestSessionLifecycle(t *testing.T) {
	store := NewMemoryStore()
	s := New(store)

	token, err := s.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.False(t, s.Active())

	require.NoError(t, s.SetToken("abc"))
	assert.Equal(t, "abc", s.Token())
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", stored)

	// A fresh session over the same store picks the token up again.
	restored := New(store)
	token, err = restored.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	assert.Equal(t, "abc", restored.Token())

	require.NoError(t, restored.Clear())
	assert.Empty(t, restored.Token())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestSetTokenKeepsMemoryOnStoreFailure(t *testing.T) {
	s := New(&failingStore{})
	err := s.SetToken("abc")
	assert.Error(t, err)
	assert.Equal(t, "abc", s.Token())
}

func TestUsername(t *testing.T) {
	s := New(NewMemoryStore())
	assert.Empty(t, s.Username())

	require.NoError(t, s.SetToken(signed(t, jwt.MapClaims{"username": "bill"})))
	assert.Equal(t, "bill", s.Username())

	require.NoError(t, s.SetToken(signed(t, jwt.MapClaims{"sub": "ann"})))
	assert.Equal(t, "ann", s.Username())

	require.NoError(t, s.SetToken("opaque-token"))
	assert.Empty(t, s.Username())

	s.SetUser("carol")
	assert.Equal(t, "carol", s.Username())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Username())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	fs := NewFileStore(path)

	_, err := fs.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, fs.Save("tok-1"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, fs.Save("tok-2"))
	got, err = fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear(), "clearing twice is fine")
	_, err = fs.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileStoreTightensExistingMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"old"}`), 0o644))

	fs := NewFileStore(path)
	require.NoError(t, fs.Save("new"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "new", got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStoreSaveFailureCleansUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	fs := NewFileStore(path)
	require.NoError(t, fs.Save("old"))

	// a directory at the target path makes the final rename fail
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0o600))

	require.Error(t, fs.Save("new"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file removed after a failed save")
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoToken)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := OpenSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save("tok-1"))
	require.NoError(t, store.Save("tok-2"))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	// Survives reopening.
	require.NoError(t, store.Close())
	store, err = OpenSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}
