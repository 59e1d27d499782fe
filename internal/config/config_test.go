package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "memory"

[auth]
jwt_secret = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, []string{"CityMall", "TechPark", "CentralOffice", "Airport", "Stadium"}, cfg.Catalog.Locations)
	assert.Equal(t, []int{1, 2}, cfg.Catalog.Floors)
	assert.Equal(t, []string{"A", "B", "C", "D"}, cfg.Catalog.Rows)
	assert.Equal(t, []int{1, 2, 3}, cfg.Catalog.Numbers)
	assert.Equal(t, "parking.events", cfg.RabbitMQ.Queue)
	assert.Equal(t, 30, cfg.Reconciler.LockTTLSeconds)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "postgres"
host = "localhost"
dbname = "parking"
password = "from-file"

[auth]
jwt_secret = "from-file"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "jwt-from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "jwt-from-env", cfg.Auth.JWTSecret)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown driver", body: "[database]\ndriver = \"mysql\"\n[auth]\njwt_secret = \"s\"\n"},
		{name: "missing secret", body: "[database]\ndriver = \"memory\"\n"},
		{name: "postgres without host", body: "[database]\ndriver = \"postgres\"\n[auth]\njwt_secret = \"s\"\n"},
		{name: "bad timezone", body: "[database]\ndriver = \"memory\"\n[auth]\njwt_secret = \"s\"\n[booking]\ntimezone = \"Mars/Base\"\n"},
		{name: "bad floor", body: "[database]\ndriver = \"memory\"\n[auth]\njwt_secret = \"s\"\n[catalog]\nfloors = [0]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN_SQLite(t *testing.T) {
	d := DatabaseConfig{Driver: DriverSQLite, Path: "/tmp/parking.db"}
	assert.Equal(t, "/tmp/parking.db", d.DSN())
}
