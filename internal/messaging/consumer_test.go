package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestProcessMessage(t *testing.T) {
	tests := []struct {
		name        string
		handlerErr  error
		redelivered bool
		wantAck     bool
		wantRequeue bool
	}{
		{name: "success acks", wantAck: true},
		{name: "failure requeues", handlerErr: errors.New("bad payload"), wantRequeue: true},
		{name: "repeated failure drops", handlerErr: errors.New("bad payload"), redelivered: true},
		{name: "invalid message dropped on first delivery", handlerErr: fmt.Errorf("handle: %w", models.ValidationError{Field: "body", Message: "invalid JSON"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Consumer{
				logger:    logger.NewWithWriter("test", "debug", io.Discard),
				queueName: NotificationsQueue,
			}
			ack := &fakeAcknowledger{}
			delivery := amqp091.Delivery{
				Acknowledger:  ack,
				Body:          []byte(`{"order_id":1}`),
				CorrelationId: "req-42",
				Redelivered:   tt.redelivered,
			}

			var seenID string
			c.processMessage(context.Background(), delivery, func(ctx context.Context, body []byte) error {
				seenID = logger.RequestIDFromContext(ctx)
				return tt.handlerErr
			})

			assert.Equal(t, "req-42", seenID)
			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, !tt.wantAck, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeue)
		})
	}
}

func TestDrainStopsOnContext(t *testing.T) {
	c := &Consumer{logger: logger.NewWithWriter("test", "error", io.Discard)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.drain(ctx, make(chan amqp091.Delivery), func(context.Context, []byte) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDrainReturnsWhenChannelCloses(t *testing.T) {
	c := &Consumer{logger: logger.NewWithWriter("test", "error", io.Discard)}
	msgs := make(chan amqp091.Delivery, 1)
	ack := &fakeAcknowledger{}
	msgs <- amqp091.Delivery{Acknowledger: ack, Body: []byte(`{}`)}
	close(msgs)

	calls := 0
	err := c.drain(context.Background(), msgs, func(context.Context, []byte) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, ack.acked)
}
