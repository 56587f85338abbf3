package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
)

type fakeBroker struct {
	exchange string
	body     []byte
}

func (f *fakeBroker) Publish(_ context.Context, exchange, _ string, body []byte) error {
	f.exchange = exchange
	f.body = body
	return nil
}

func TestPublisher_PublishesToastAsJSON(t *testing.T) {
	broker := &fakeBroker{}
	toast, err := domain.NewToast("id-1", "tab-1", "Welcome back, courier!", domain.SeveritySuccess,
		time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), domain.After(500*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, NewPublisher(broker).Deliver(context.Background(), toast))

	assert.Equal(t, "notifications_fanout", broker.exchange)
	var msg map[string]any
	require.NoError(t, json.Unmarshal(broker.body, &msg))
	assert.Equal(t, "tab-1", msg["scope"])
	assert.Equal(t, "success", msg["severity"])
	assert.EqualValues(t, 500, msg["delayMs"])
}

func TestPublisher_NilBrokerIsNoop(t *testing.T) {
	require.NoError(t, NewPublisher(nil).Deliver(context.Background(), domain.Toast{Message: "x"}))
}
