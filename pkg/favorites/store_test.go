package favorites

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddRemove(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "favorites.json")
	store := New(path)

	assert.Empty(t, store.List())

	store.Add("BTC/USD")
	store.Add("ETH/USD")
	store.Add("BTC/USD") // idempotent
	assert.Equal(t, []string{"BTC/USD", "ETH/USD"}, store.List())
	assert.True(t, store.IsFavorite("BTC/USD"))

	store.Remove("BTC/USD")
	assert.Equal(t, []string{"ETH/USD"}, store.List())
	assert.False(t, store.IsFavorite("BTC/USD"))
}

func TestStorePersistsAcrossRestarts(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "favorites.json")

	store := New(path)
	store.Add("SOL/USD")
	store.Add("BTC/USD")

	reloaded := New(path)
	assert.Equal(t, []string{"BTC/USD", "SOL/USD"}, reloaded.List())
}

func TestStoreCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	// a corrupt file starts empty instead of failing startup
	store := New(path)
	assert.Empty(t, store.List())

	// and is overwritten by the next change
	store.Add("BTC/USD")
	assert.Equal(t, []string{"BTC/USD"}, New(path).List())
}

func TestStoreToggle(t *testing.T) {
	t.Parallel()
	store := New(filepath.Join(t.TempDir(), "favorites.json"))

	assert.True(t, store.Toggle("BTC/USD"))
	assert.False(t, store.Toggle("BTC/USD"))
	assert.Empty(t, store.List())
}
