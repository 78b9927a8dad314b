package sqlc

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createNotificationJob = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3::jsonb, $4, 'queued')`

type CreateNotificationJobParams struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob, arg.Kind, arg.Topic, arg.Payload, arg.RunAt)
	return err
}

// Rows locked by another relay are skipped. Claimed rows get run_at = $2, which leases them
// to the caller after the claiming transaction commits.
const claimDueNotificationJobs = `
WITH due AS (
    SELECT id FROM notification_jobs
    WHERE status = 'queued' AND run_at <= $1
    ORDER BY run_at
    LIMIT $3
    FOR UPDATE SKIP LOCKED
)
UPDATE notification_jobs n
SET run_at = $2, updated_at = now()
FROM due
WHERE n.id = due.id
RETURNING n.id, n.kind, n.topic, n.payload, n.run_at, n.attempts`

func (q *Queries) ClaimDueNotificationJobs(ctx context.Context, db DBTX, now, leaseUntil time.Time, limit int32) ([]NotificationJob, error) {
	rows, err := db.Query(ctx, claimDueNotificationJobs, now, leaseUntil, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []NotificationJob
	for rows.Next() {
		var i NotificationJob
		if err := rows.Scan(&i.ID, &i.Kind, &i.Topic, &i.Payload, &i.RunAt, &i.Attempts); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const markNotificationJobSent = `
UPDATE notification_jobs
SET status = 'sent', sent_at = $2, attempts = attempts + 1, last_error = NULL, updated_at = now()
WHERE id = $1`

func (q *Queries) MarkNotificationJobSent(ctx context.Context, db DBTX, id uuid.UUID, sentAt time.Time) error {
	_, err := db.Exec(ctx, markNotificationJobSent, id, sentAt)
	return err
}

const markNotificationJobFailed = `
UPDATE notification_jobs
SET attempts = attempts + 1, last_error = $2, run_at = $3, updated_at = now()
WHERE id = $1`

func (q *Queries) MarkNotificationJobFailed(ctx context.Context, db DBTX, id uuid.UUID, lastError string, nextRunAt time.Time) error {
	_, err := db.Exec(ctx, markNotificationJobFailed, id, lastError, nextRunAt)
	return err
}
