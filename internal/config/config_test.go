package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
server:
  port: 8080
  allow_origins: ["https://reports.example.com"]
database:
  driver: sqlite
  path: /var/lib/daily.db
session:
  ttl: 48h
report:
  timezone: Asia/Kolkata
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("PORT", "9000")
	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("BCRYPT_COST", "not-a-number")

	c := Load(path)
	assert.Equal(t, 9000, c.Server.Port, "env wins over yaml")
	assert.Equal(t, ":9000", c.Addr())
	assert.Equal(t, []string{"https://reports.example.com"}, c.Server.AllowOrigins)
	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.Equal(t, "/var/lib/daily.db", c.Database.Path)
	assert.Equal(t, 48*time.Hour, c.Session.TTL)
	assert.Equal(t, time.Hour, c.Session.SweepInterval, "unset keys keep defaults")
	assert.Equal(t, "from-env", c.Auth.AdminPassword)
	assert.Equal(t, 10, c.Auth.BcryptCost, "bad integers are ignored")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	d := Default()
	assert.Equal(t, d.Server.Port, c.Server.Port)
	assert.Equal(t, 7*24*time.Hour, c.Session.TTL)
}

// captureLog redirects the default slog logger into a buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoadMalformedFileWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: sqlite\n port: [unclosed\n"), 0o644))
	buf := captureLog(t)

	c := Load(path)
	assert.Contains(t, buf.String(), "config file ignored")
	assert.Contains(t, buf.String(), path)
	assert.Equal(t, Default().Database.Driver, c.Database.Driver, "partially parsed values are discarded")
}

func TestLoadWarnsOnCustomSessionTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  ttl: 1h\n"), 0o644))
	buf := captureLog(t)

	c := Load(path)
	assert.Equal(t, time.Hour, c.Session.TTL)
	assert.Contains(t, buf.String(), "session ttl differs")

	buf.Reset()
	Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NotContains(t, buf.String(), "session ttl differs")
}

func TestLocation(t *testing.T) {
	c := Default()
	assert.Equal(t, time.Local, c.Location())

	c.Report.Timezone = "UTC"
	assert.Equal(t, "UTC", c.Location().String())

	c.Report.Timezone = "Mars/Olympus"
	assert.Equal(t, time.Local, c.Location())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := DatabaseConfig{Driver: "oracle"}.Open()
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpenSQLite(t *testing.T) {
	db, err := DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}.Open()
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())
}
