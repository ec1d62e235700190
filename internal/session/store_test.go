package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))
}

func TestFileStore_MissingFileIsEmptySession(t *testing.T) {
	store := newTestStore(t)

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := store.User()
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFileStore_SetAndReadBack(t *testing.T) {
	store := newTestStore(t)

	user := &domain.User{ID: "u1", FullName: "Ann Smith", Email: "ann@example.com", Role: domain.RoleAdmin}
	require.NoError(t, store.Set("tok-1", user))
	require.NoError(t, store.SetRefreshToken("refresh-1"))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	got, err := store.User()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ann Smith", got.FullName)
	assert.True(t, got.IsAdmin())
}

func TestFileStore_SetKeepsRefreshToken(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetRefreshToken("refresh-1"))
	require.NoError(t, store.Set("tok-2", nil))

	data, err := os.ReadFile(store.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "refresh-1")
	assert.Contains(t, string(data), "tok-2")
}

func TestFileStore_ClearRemovesEverything(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("tok-1", &domain.User{ID: "u1"}))
	require.NoError(t, store.SetRefreshToken("refresh-1"))
	require.NoError(t, store.Clear())

	_, err := os.Stat(store.path)
	assert.True(t, os.IsNotExist(err))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Clear())
}
