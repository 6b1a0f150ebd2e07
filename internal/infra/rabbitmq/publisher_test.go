package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (c *recordingChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *recordingChannel) Close() error { return nil }

func TestPublisher_Publish(t *testing.T) {
	ch := &recordingChannel{}
	p := newPublisherWithChannel(ch, DefaultExchange)

	err := p.Publish(context.Background(), "order.paid", map[string]string{"orderId": "o1"})
	require.NoError(t, err)

	assert.Equal(t, DefaultExchange, ch.exchange)
	assert.Equal(t, "order.paid", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var msg struct {
		Pattern string            `json:"pattern"`
		Data    map[string]string `json:"data"`
		ID      string            `json:"id"`
	}
	require.NoError(t, json.Unmarshal(ch.msg.Body, &msg))
	assert.Equal(t, "order.paid", msg.Pattern)
	assert.Equal(t, "o1", msg.Data["orderId"])
	assert.Equal(t, ch.msg.MessageId, msg.ID)
	_, err = uuid.Parse(msg.ID)
	assert.NoError(t, err)
}

func TestPublisher_Errors(t *testing.T) {
	ch := &recordingChannel{err: errors.New("channel closed")}
	p := newPublisherWithChannel(ch, DefaultExchange)

	err := p.Publish(context.Background(), "order.created", nil)
	assert.ErrorContains(t, err, "channel closed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "order.created", nil), context.Canceled)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), "order.created", nil))
}
