package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "state", "auth_token"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("tok123"))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	require.NoError(t, store.Clear())

	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileTokenStoreClearIsIdempotent(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "auth_token"))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}
