package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sidnaik04/YT-Assistant/internal/domain"
)

// RequestLogRepository persists per-user video operation records.
type RequestLogRepository interface {
	Create(ctx context.Context, log *domain.RequestLog) error
}

type requestLogRepository struct {
	pool *pgxpool.Pool
}

// NewRequestLogRepository returns a Postgres-backed implementation.
func NewRequestLogRepository(pool *pgxpool.Pool) RequestLogRepository {
	return &requestLogRepository{pool: pool}
}

func (r *requestLogRepository) Create(ctx context.Context, log *domain.RequestLog) error {
	const query = `
        INSERT INTO request_logs (user_id, video_url, action)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		log.UserID,
		log.VideoURL,
		log.Action,
	).Scan(&log.ID, &log.CreatedAt)
}

