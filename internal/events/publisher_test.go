package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (c *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange = exchange
	c.key = key
	c.msg = msg
	return c.err
}

func (c *recordingChannel) Close() error {
	c.closed = true
	return nil
}

func TestPublishJSON(t *testing.T) {
	ch := &recordingChannel{}
	p := &Publisher{ch: ch, exchange: "nutribook.bookings"}

	err := p.PublishJSON(context.Background(), "booking.confirmed", map[string]string{"bookingId": "b-1"})
	require.NoError(t, err)

	assert.Equal(t, "nutribook.bookings", ch.exchange)
	assert.Equal(t, "booking.confirmed", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.NotEmpty(t, ch.msg.MessageId)

	var body map[string]string
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, "b-1", body["bookingId"])
}

func TestPublishJSON_Errors(t *testing.T) {
	ch := &recordingChannel{err: errors.New("channel closed")}
	p := &Publisher{ch: ch, exchange: "nutribook.bookings"}

	assert.Error(t, p.PublishJSON(context.Background(), "booking.confirmed", map[string]string{}))
	assert.Error(t, p.PublishJSON(context.Background(), "booking.confirmed", make(chan int)))
}

func TestClose(t *testing.T) {
	ch := &recordingChannel{}
	p := &Publisher{ch: ch}

	assert.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
