package worker

import (
	"log/slog"

	"rental-engine/internal/pkg/config"
	"rental-engine/internal/usecase/commands"
)

// MaintenanceTasks schedules the refund retry, pending expiry and outbox relay passes.
func MaintenanceTasks(cfg config.Config, uc commands.MaintenanceCommands) []Task {
	tasks := []Task{
		{Name: "refund-retry", Interval: cfg.Payments.RefundRetryInterval, Run: uc.RetryDueRefunds},
		{Name: "outbox-relay", Interval: cfg.Broker.RelayInterval, Run: uc.RelayOutbox},
	}
	if cfg.Booking.PendingTTL > 0 {
		tasks = append(tasks, Task{Name: "pending-expiry", Interval: cfg.Booking.SweepInterval, Run: uc.ExpireStalePending})
	}
	return tasks
}

func NewMaintenanceRunner(cfg config.Config, uc commands.MaintenanceCommands, logger *slog.Logger) *Runner {
	return NewRunner(logger, MaintenanceTasks(cfg, uc)...)
}
