//go:build unit

package broker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-engine/internal/infra/broker"
	brokermock "rental-engine/tests/mock/broker"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAMQPPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return at }
	payload := []byte(`{"booking_id":"b-1"}`)

	t.Run("publishes a persistent json message routed by topic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ch := brokermock.NewMockChannel(ctrl)
		dials := 0
		dial := func() (broker.Channel, func(), error) {
			dials++
			return ch, func() {}, nil
		}

		ch.EXPECT().
			PublishWithContext(ctx, "rental.events", "booking.created", false, false, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
				assert.Equal(t, "application/json", msg.ContentType)
				assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
				assert.Equal(t, at, msg.Timestamp)
				assert.Equal(t, payload, msg.Body)
				return nil
			}).
			Times(2)

		p := broker.NewAMQPPublisher("rental.events", dial, now)
		require.NoError(t, p.Publish(ctx, "booking.created", payload))
		require.NoError(t, p.Publish(ctx, "booking.created", payload))
		assert.Equal(t, 1, dials)
	})

	t.Run("failed publish redials on the next call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		first := brokermock.NewMockChannel(ctrl)
		second := brokermock.NewMockChannel(ctrl)
		channels := []broker.Channel{first, second}
		dial := func() (broker.Channel, func(), error) {
			ch := channels[0]
			channels = channels[1:]
			return ch, func() {}, nil
		}

		first.EXPECT().
			PublishWithContext(ctx, "rental.events", "payment.failed", false, false, gomock.Any()).
			Return(amqp.ErrClosed)
		first.EXPECT().Close().Return(nil)
		second.EXPECT().
			PublishWithContext(ctx, "rental.events", "payment.failed", false, false, gomock.Any()).
			Return(nil)

		p := broker.NewAMQPPublisher("rental.events", dial, now)
		err := p.Publish(ctx, "payment.failed", payload)
		require.Error(t, err)
		assert.ErrorIs(t, err, amqp.ErrClosed)

		require.NoError(t, p.Publish(ctx, "payment.failed", payload))
		assert.Empty(t, channels)
	})

	t.Run("dial error is returned", func(t *testing.T) {
		dialErr := errors.New("connection refused")
		dial := func() (broker.Channel, func(), error) { return nil, nil, dialErr }

		p := broker.NewAMQPPublisher("rental.events", dial, now)
		err := p.Publish(ctx, "booking.created", payload)
		assert.ErrorIs(t, err, dialErr)
	})
}

func TestLogPublisher(t *testing.T) {
	p := broker.NewLogPublisher()
	assert.NoError(t, p.Publish(context.Background(), "booking.created", []byte(`{}`)))
}
