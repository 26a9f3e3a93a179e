package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/config"
)

func TestConnectSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.db")

	db, err := Connect(config.StorageConfig{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "sqlite", db.DriverName())
	assert.DirExists(t, filepath.Dir(path))
}

func TestConnectErrors(t *testing.T) {
	_, err := Connect(config.StorageConfig{Driver: "postgres"})
	assert.Error(t, err)

	_, err = Connect(config.StorageConfig{Driver: "redis"})
	assert.Error(t, err)
}
