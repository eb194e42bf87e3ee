package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
database:
  path: `+filepath.Join(dir, "salon.db")+`
salon:
  weekday_hours: "09:00 - 19:00"
  weekend_hours: "11:00 - 17:00"
  lunch_start: "14:00"
  lunch_end: "15:00"
  timezone: "Europe/Moscow"
booking:
  lead_time_minutes: 60
  granularity_minutes: 15
  default_duration_minutes: 45
  hold_ttl_minutes: 5
redis:
  address: "localhost:6379"
  cache_ttl_seconds: 120
api:
  port: 8081
  rate_limit_rps: 5
  rate_limit_burst: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "09:00 - 19:00", cfg.WeekdayHours())
	assert.Equal(t, "11:00 - 17:00", cfg.WeekendHours())
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())
	assert.Equal(t, 60, cfg.LeadTimeMinutes())
	assert.Equal(t, 15, cfg.GranularityMinutes())
	assert.Equal(t, 45, cfg.DefaultDurationMinutes())
	assert.Equal(t, 5*time.Minute, cfg.HoldTTL())
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 8081, cfg.API.Port)
	assert.Equal(t, float64(5), cfg.RateLimitRPS())
	assert.Equal(t, 10, cfg.RateLimitBurst())
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "database:\n  path: "+filepath.Join(dir, "salon.db")+"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "10:00 - 20:00", cfg.WeekdayHours())
	assert.Equal(t, "10:00 - 18:00", cfg.WeekendHours())
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())
	assert.Equal(t, 30, cfg.LeadTimeMinutes())
	assert.Equal(t, 30, cfg.GranularityMinutes())
	assert.Equal(t, 60, cfg.DefaultDurationMinutes())
	assert.Equal(t, 10*time.Minute, cfg.HoldTTL())
	assert.Equal(t, float64(20), cfg.RateLimitRPS())
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SALON_TZ", "UTC")
	dir := t.TempDir()
	path := writeConfig(t, `
database:
  path: `+filepath.Join(dir, "salon.db")+`
salon:
  timezone: "${SALON_TZ}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLocationBadTimezoneFallsBack(t *testing.T) {
	cfg := &Config{}
	cfg.Salon.Timezone = "Mars/Olympus"
	assert.Equal(t, time.UTC, cfg.Location())
}
