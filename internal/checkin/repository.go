package checkin

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, ownerID int, memberID *int, scannedCode string, status Status, reason string) (*CheckIn, error) {
	query := `
		INSERT INTO check_ins (owner_id, member_id, scanned_code, status, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, member_id, scanned_code, status, reason, created_at
	`

	var ci CheckIn
	err := r.db.GetContext(ctx, &ci, query, ownerID, memberID, scannedCode, status, reason)
	if err != nil {
		return nil, err
	}

	return &ci, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int, from, to time.Time, limit, offset int) ([]CheckInWithMember, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			c.id,
			c.owner_id,
			c.member_id,
			c.scanned_code,
			c.status,
			c.reason,
			c.created_at,
			m.name AS member_name,
			m.email AS member_email,
			m.photo_url AS member_photo
		FROM check_ins c
		LEFT JOIN members m ON m.id = c.member_id
		WHERE c.owner_id = $1
		  AND c.created_at >= $2
		  AND c.created_at < $3
		ORDER BY c.created_at DESC
		LIMIT $4 OFFSET $5
	`

	checkIns := []CheckInWithMember{}
	err := r.db.SelectContext(ctx, &checkIns, query, ownerID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}

	return checkIns, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID, limit, offset int) ([]CheckIn, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, owner_id, member_id, scanned_code, status, reason, created_at
		FROM check_ins
		WHERE member_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	checkIns := []CheckIn{}
	err := r.db.SelectContext(ctx, &checkIns, query, memberID, limit, offset)
	if err != nil {
		return nil, err
	}

	return checkIns, nil
}

func (r *repository) StatsForWindow(ctx context.Context, ownerID int, from, to time.Time) (*Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'success') AS successful,
			COUNT(*) FILTER (WHERE status = 'failed')  AS failed
		FROM check_ins
		WHERE owner_id = $1
		  AND created_at >= $2
		  AND created_at < $3
	`

	var stats Stats
	err := r.db.GetContext(ctx, &stats, query, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *repository) DailyStats(ctx context.Context, ownerID int, from, to time.Time) ([]DailyStats, error) {
	query := `
		SELECT
			TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS bucket,
			COUNT(*) FILTER (WHERE status = 'success') AS successful,
			COUNT(*) FILTER (WHERE status = 'failed')  AS failed
		FROM check_ins
		WHERE owner_id = $1
		  AND created_at >= $2
		  AND created_at < $3
		GROUP BY DATE(created_at)
		ORDER BY bucket
	`

	stats := []DailyStats{}
	err := r.db.SelectContext(ctx, &stats, query, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
