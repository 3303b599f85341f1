package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "CACHE_BACKEND", "CACHE_TTL", "GEOFENCE_RADIUS_METERS", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "", cfg.Server.Port, "una variable definida vacía gana al valor por defecto")
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 100.0, cfg.Geofence.RadiusMeters)
	assert.Empty(t, cfg.Server.CORSOrigins)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("GEOFENCE_RADIUS_METERS", "250.5")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ORIGINS", "http://a.local, http://b.local,")
	t.Setenv("DB_RUN_MIGRATIONS", "false")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 250.5, cfg.Geofence.RadiusMeters)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "cinco minutos")
	t.Setenv("GEOFENCE_RADIUS_METERS", "cien")

	cfg := Load()
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 100.0, cfg.Geofence.RadiusMeters)
}
