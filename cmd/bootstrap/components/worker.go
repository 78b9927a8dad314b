package components

import (
	"context"

	"rental-engine/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewMaintenanceRunner,
	),
	fx.Invoke(startWorkers),
)

func startWorkers(lc fx.Lifecycle, r *worker.Runner) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			r.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return r.Stop(ctx)
		},
	})
}
