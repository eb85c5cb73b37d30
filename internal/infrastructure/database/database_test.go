package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waste3d/learnpath-api/config"

	"gorm.io/gorm/logger"
)

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "learnpath.db")

	db, err := Open(config.Config{DBDriver: "sqlite", SQLitePath: path, DBLogLevel: "silent"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	assert.NoError(t, sqlDB.Ping())
	assert.FileExists(t, path)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
	}{
		{in: "silent", want: logger.Silent},
		{in: "ERROR", want: logger.Error},
		{in: "info", want: logger.Info},
		{in: "", want: logger.Warn},
		{in: "verbose", want: logger.Warn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LogLevel(tt.in), tt.in)
	}
}
