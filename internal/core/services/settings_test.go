package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/libris-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

func TestSettingsService_Get_Defaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStoreSettings(), settings.Store)
}

func TestSettingsService_Get_FromConfig(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"store.backend":                 "sqlite",
		"store.uri":                     "mongodb://db.internal:27017/",
		"store.database":                "Shop",
		"store.collection":              "Inventory",
		"store.data_dir":                "/var/lib/libris",
		"store.connect_timeout_seconds": int64(12),
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendSQLite, settings.Store.Backend)
	assert.Equal(t, "mongodb://db.internal:27017/", settings.Store.URI)
	assert.Equal(t, "Shop", settings.Store.Database)
	assert.Equal(t, "Inventory", settings.Store.Collection)
	assert.Equal(t, "/var/lib/libris", settings.Store.DataDir)
	assert.Equal(t, 12*time.Second, settings.Store.ConnectTimeout)
}

func TestSettingsService_Get_EnvOverridesConfig(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"store.backend": "sqlite",
		"store.uri":     "mongodb://from-config/",
	})
	t.Setenv(EnvStoreBackend, "memory")
	t.Setenv(EnvStoreURI, "mongodb://from-env/")
	t.Setenv(EnvStoreDatabase, "EnvLibrary")
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendMemory, settings.Store.Backend)
	assert.Equal(t, "mongodb://from-env/", settings.Store.URI)
	assert.Equal(t, "EnvLibrary", settings.Store.Database)
	assert.Equal(t, domain.DefaultCollection, settings.Store.Collection)
}

func TestSettingsService_Get_NilConfigStore(t *testing.T) {
	service := NewSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStoreSettings(), settings.Store)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	in := &domain.AppSettings{Store: domain.StoreSettings{
		Backend:        domain.StoreBackendSQLite,
		URI:            "mongodb://example/",
		Database:       "A",
		Collection:     "B",
		DataDir:        "/tmp/libris",
		ConnectTimeout: 9 * time.Second,
	}}
	require.NoError(t, service.Save(in))

	out, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, in.Store, out.Store)
}

func TestSettingsService_SaveDefaultsClearsDataDir(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("store.data_dir", "/tmp/old"))
	service := NewSettingsService(store)

	defaults := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&defaults))

	out, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStoreSettings(), out.Store)
}

func TestSettingsService_Save_NilConfigStore(t *testing.T) {
	service := NewSettingsService(nil)
	err := service.Save(&domain.AppSettings{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestSettingsService_SetBackend(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetBackend(domain.StoreBackendMemory))
	assert.Equal(t, "memory", store.GetString("store.backend"))

	err := service.SetBackend(domain.StoreBackend("cassandra"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Equal(t, "memory", store.GetString("store.backend"))
}

func TestSettingsService_SetURI(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetURI("mongodb://replica:27017/"))
	assert.Equal(t, "mongodb://replica:27017/", store.GetString("store.uri"))

	assert.ErrorIs(t, service.SetURI(""), domain.ErrInvalidInput)
}

func TestSettingsService_SetDatabaseAndCollection(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetDatabase("Archive"))
	require.NoError(t, service.SetCollection("Volumes"))
	assert.Equal(t, "Archive", store.GetString("store.database"))
	assert.Equal(t, "Volumes", store.GetString("store.collection"))

	assert.ErrorIs(t, service.SetDatabase(""), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetCollection(""), domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	assert.NoError(t, service.Validate())

	require.NoError(t, store.Set("store.backend", "oracle"))
	assert.ErrorIs(t, service.Validate(), domain.ErrUnsupportedType)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
