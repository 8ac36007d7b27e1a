package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSClient_PublishWithoutConnection(t *testing.T) {
	client := NewNATSClient("nats://127.0.0.1:4222")

	assert.False(t, client.IsConnected())

	err := client.Publish(context.Background(), "lottery.games.created", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")

	assert.NoError(t, client.Close())
}
