package mailer

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	Stream        = "mail:outbound"
	ConsumerGroup = "mailers"
)

// Message is one outbound email queued on the redis stream. Handlers enqueue
// and return; delivery happens on the consumer side.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Enqueuer struct {
	client *redis.Client
}

func NewEnqueuer(client *redis.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) Enqueue(ctx context.Context, msg Message) error {
	if e.client == nil {
		return nil
	}
	_, err := e.client.XAdd(ctx, &redis.XAddArgs{
		Stream: Stream,
		Values: map[string]any{
			"to":      msg.To,
			"subject": msg.Subject,
			"body":    msg.Body,
		},
	}).Result()
	return err
}
