package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracking-service/internal/config"
	"tracking-service/internal/events"
	"tracking-service/internal/handlers"
)

type brokerPublisher struct {
	events.NopPublisher
	connected bool
}

func (p *brokerPublisher) IsConnected() bool { return p.connected }

func TestHealthChecks_EventsConnection(t *testing.T) {
	checks := healthChecks(nil, nil, events.NopPublisher{})
	assert.Contains(t, checks, "database")
	assert.NotContains(t, checks, "redis")
	assert.NotContains(t, checks, "events")

	pub := &brokerPublisher{connected: false}
	checks = healthChecks(nil, nil, pub)
	require.Contains(t, checks, "events")
	assert.ErrorIs(t, checks["events"](context.Background()), events.ErrNotConnected)

	pub.connected = true
	assert.NoError(t, checks["events"](context.Background()))
}

func TestSetupRouter_ServesSwaggerUI(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{Server: config.ServerConfig{Port: "8090", Env: "test"}}

	router := setupRouter(cfg, logger, nil,
		handlers.NewShipmentHandler(nil),
		handlers.NewCarrierHandler(nil),
		handlers.NewHealthHandler(nil),
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
