package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"store.backend": "memory",
		"store.timeout": 3,
	})

	assert.Equal(t, "memory", store.GetString("store.backend"))
	assert.Equal(t, 3, store.GetInt("store.timeout"))
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("store.uri", "mongodb://a"))
	require.NoError(t, store.Set("store.uri", "mongodb://b"))

	val, ok := store.Get("store.uri")
	assert.True(t, ok)
	assert.Equal(t, "mongodb://b", val)
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("n", 42))

	assert.Equal(t, "", store.GetString("n"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt_Types(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("int", 1))
	require.NoError(t, store.Set("int64", int64(2)))
	require.NoError(t, store.Set("float", 3.0))
	require.NoError(t, store.Set("str", "4"))

	assert.Equal(t, 1, store.GetInt("int"))
	assert.Equal(t, 2, store.GetInt("int64"))
	assert.Equal(t, 3, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("str"))
	assert.Equal(t, 0, store.GetInt("missing"))
}
