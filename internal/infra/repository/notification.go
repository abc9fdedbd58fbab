package repository

import (
	"context"
	"time"

	"bookplace/internal/infra"
	"bookplace/internal/infra/db"
	"bookplace/internal/pkg/pgconv"
)

// NotificationRepository queues delivery jobs in the same transaction as
// the state change that caused them. A worker drains the table out of band.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	const query = `
		INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, 'queued')`

	_, err := r.db.Exec(ctx, query, kind, topic, payload, pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
