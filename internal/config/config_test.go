package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8090

[database]
host = "db"
dbname = "trainings"
user = "smc"

[user_service]
url = "http://users:8080"

[notification_service]
url = "http://notifications:8080"
timeout = 2

[scheduling]
slot_step_minutes = 15
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("SMC_DB_PASSWORD", "secret")
	t.Setenv("SMC_DB_PORT", "6543")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 2, cfg.NotificationService.Timeout)
	assert.Equal(t, 5, cfg.UserService.Timeout)
	assert.Equal(t, 15, cfg.Scheduling.SlotStepMinutes)
	assert.Equal(t, 3, cfg.Scheduling.SerializableRetries)
	assert.Equal(t, "host=db port=6543 user=smc password=secret dbname=trainings sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad env port", func(t *testing.T) {
		t.Setenv("SMC_HTTP_PORT", "eighty")
		_, err := Load(writeConfig(t, sampleConfig))
		assert.Error(t, err)
	})

	t.Run("step does not divide an hour", func(t *testing.T) {
		cfg := defaults()
		cfg.Database.DBName = "x"
		cfg.UserService.URL = "u"
		cfg.NotificationService.URL = "n"
		cfg.Scheduling.SlotStepMinutes = 25
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}
