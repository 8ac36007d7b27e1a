package cmd

import (
	"context"
	"testing"

	"lottery/config"
	"lottery/events"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLogging(t *testing.T) {
	original := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(original) })

	cfg := config.NewTestConfig()

	cfg.LogLevel = "warn"
	configureLogging(cfg)
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	cfg.LogLevel = "chatty"
	configureLogging(cfg)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestStartEventForwarding_DisabledWithoutServers(t *testing.T) {
	client, err := startEventForwarding(context.Background(), "", events.NewBus())

	require.NoError(t, err)
	assert.Nil(t, client)
}
