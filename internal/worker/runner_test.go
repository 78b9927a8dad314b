//go:build unit

package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"rental-engine/internal/pkg/config"
	"rental-engine/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnce(t *testing.T) {
	t.Run("pass gets a deadline from the timeout", func(t *testing.T) {
		var hadDeadline bool
		task := worker.Task{
			Name:     "t",
			Interval: time.Hour,
			Timeout:  time.Second,
			Run: func(ctx context.Context) (int, error) {
				_, hadDeadline = ctx.Deadline()
				return 3, nil
			},
		}

		n, err := worker.RunOnce(context.Background(), discardLogger(), task)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.True(t, hadDeadline)
	})

	t.Run("error is returned with partial count", func(t *testing.T) {
		boom := errors.New("boom")
		task := worker.Task{
			Name:     "t",
			Interval: time.Minute,
			Run:      func(context.Context) (int, error) { return 1, boom },
		}

		n, err := worker.RunOnce(context.Background(), discardLogger(), task)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, n)
	})
}

func TestRunner_StartStop(t *testing.T) {
	var calls atomic.Int32
	ticked := make(chan struct{}, 1)
	task := worker.Task{
		Name:     "tick",
		Interval: 5 * time.Millisecond,
		Run: func(context.Context) (int, error) {
			calls.Add(1)
			select {
			case ticked <- struct{}{}:
			default:
			}
			return 0, nil
		},
	}
	disabled := worker.Task{
		Name: "off",
		Run: func(context.Context) (int, error) {
			t.Error("disabled task must not run")
			return 0, nil
		},
	}

	r := worker.NewRunner(discardLogger(), task, disabled)
	r.Start()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

type fakeMaintenance struct{}

func (fakeMaintenance) RetryDueRefunds(context.Context) (int, error)    { return 0, nil }
func (fakeMaintenance) ExpireStalePending(context.Context) (int, error) { return 0, nil }
func (fakeMaintenance) RelayOutbox(context.Context) (int, error)        { return 0, nil }

func TestMaintenanceTasks(t *testing.T) {
	cfg := config.NewTestConfig()

	names := func(tasks []worker.Task) []string {
		out := make([]string, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.Name)
		}
		return out
	}

	assert.Equal(t, []string{"refund-retry", "outbox-relay"}, names(worker.MaintenanceTasks(cfg, fakeMaintenance{})))

	cfg.Booking.PendingTTL = 30 * time.Minute
	assert.Equal(t, []string{"refund-retry", "outbox-relay", "pending-expiry"}, names(worker.MaintenanceTasks(cfg, fakeMaintenance{})))
}
