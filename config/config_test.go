package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Database, conf.Database)
	assert.Equal(t, 24*time.Hour, conf.Auth.TokenTTL)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
database:
  driver: postgres
  dsn: host=localhost user=domi dbname=domi
auth:
  simulatedDelay: 800ms
logging:
  level: debug
`), 0o600))
	t.Setenv("PORT", "7070")

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", conf.Server.Port)
	assert.Equal(t, "postgres", conf.Database.Driver)
	assert.Equal(t, 800*time.Millisecond, conf.Auth.SimulatedDelay)
	assert.Equal(t, "debug", conf.Logging.Level)
	assert.Equal(t, Default().Auth.JWTSecret, conf.Auth.JWTSecret)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0o600))
	_, err := Load(path)
	assert.ErrorContains(t, err, "oracle")

	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	conf := Default()
	conf.Logging.Level = "warn"
	log, err := NewLogger(conf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	conf.Logging.Level = "loud"
	_, err = NewLogger(conf)
	assert.Error(t, err)
}

func TestOpenDBSqlite(t *testing.T) {
	conf := Default()
	conf.Database.DSN = filepath.Join(t.TempDir(), "test.db")
	db, err := OpenDB(conf)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	_ = sqlDB.Close()
}
