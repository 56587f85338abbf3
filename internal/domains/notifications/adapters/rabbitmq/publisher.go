package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/notifications/ports"
	platformrabbitmq "github.com/Apurer/dharai-delivery/internal/platform/rabbitmq"
)

var _ ports.Sink = (*Publisher)(nil)

// Broker is the publishing side of a message broker connection.
type Broker interface {
	Publish(ctx context.Context, exchange, key string, body []byte) error
}

// Publisher forwards toasts to the notifications fanout exchange so other
// front-ends of the same browsing scope can render them.
type Publisher struct {
	broker   Broker
	exchange string
	timeout  time.Duration
}

func NewPublisher(broker Broker) *Publisher {
	return &Publisher{broker: broker, exchange: platformrabbitmq.NotificationsExchange, timeout: 2 * time.Second}
}

type toastMessage struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	DelayMs   int64     `json:"delayMs"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *Publisher) Deliver(ctx context.Context, toast domain.Toast) error {
	if p == nil || p.broker == nil {
		return nil
	}
	body, err := json.Marshal(toastMessage{
		ID:        toast.ID,
		Scope:     toast.Scope,
		Message:   toast.Message,
		Severity:  string(toast.Severity),
		DelayMs:   toast.Delay.Milliseconds(),
		CreatedAt: toast.CreatedAt.UTC(),
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.broker.Publish(ctx, p.exchange, "", body)
}
