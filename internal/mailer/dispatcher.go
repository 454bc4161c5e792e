package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Dispatcher consumes the outbound stream and delivers mail over SMTP.
type Dispatcher struct {
	client *Client
	log    zerolog.Logger
}

func NewDispatcher(client *Client, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{client: client, log: log}
}

func (d *Dispatcher) Handle(ctx context.Context, msg redis.XMessage) error {
	var payload Message
	if err := decodePayload(msg.Values, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	if payload.To == "" {
		d.log.Warn().Str("message_id", msg.ID).Msg("mail message without recipient")
		return nil
	}

	return d.client.Send(ctx, payload.To, payload.Subject, payload.Body)
}

func decodePayload(values map[string]interface{}, out *Message) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
