package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("EVENTS_BACKEND", "")
	t.Setenv("CACHE_LIST_TTL", "")
	t.Setenv("CACHE_ANALYTICS_TTL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, EventsBackendNATS, cfg.Events.Backend)
	assert.Equal(t, 2*time.Minute, cfg.Cache.ListTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.AnalyticsTTL)
	assert.Contains(t, cfg.GetDatabaseDSN(), "host=db.local")
}

func TestLoad_DurationForms(t *testing.T) {
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("CACHE_LIST_TTL", "45s")
	t.Setenv("CACHE_ANALYTICS_TTL", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Cache.ListTTL)
	assert.Equal(t, 2*time.Minute, cfg.Cache.AnalyticsTTL)
}

func TestLoad_KafkaNeedsBrokers(t *testing.T) {
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("EVENTS_BACKEND", "Kafka")
	t.Setenv("KAFKA_BROKERS", "")

	_, err := Load()
	assert.ErrorContains(t, err, "KAFKA_BROKERS")

	t.Setenv("KAFKA_BROKERS", "kafka-0:9092,kafka-1:9092")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EventsBackendKafka, cfg.Events.Backend)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Host: "db"},
			Events:   EventsConfig{Backend: EventsBackendNone},
			Cache:    CacheConfig{ListTTL: time.Minute, AnalyticsTTL: time.Minute},
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Database.Host = ""
	assert.ErrorContains(t, cfg.Validate(), "DB_HOST")

	cfg = valid()
	cfg.Events.Backend = "rabbit"
	assert.ErrorContains(t, cfg.Validate(), "EVENTS_BACKEND")

	cfg = valid()
	cfg.Cache.AnalyticsTTL = 0
	assert.Error(t, cfg.Validate())
}
