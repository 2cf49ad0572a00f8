package plan

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ownerID int, name string, priceCents int64, durationDays int, features []string, isPopular bool) (*Plan, error) {
	query := `
		INSERT INTO membership_plans (owner_id, name, price_cents, duration_days, features, is_popular)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, name, price_cents, duration_days, features, is_active, is_popular, created_at, updated_at
	`

	var plan Plan
	err := r.db.GetContext(ctx, &plan, query, ownerID, name, priceCents, durationDays, pq.Array(features), isPopular)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *repository) GetForOwner(ctx context.Context, ownerID, planID int) (*Plan, error) {
	query := `
		SELECT id, owner_id, name, price_cents, duration_days, features, is_active, is_popular, created_at, updated_at
		FROM membership_plans
		WHERE id = $1 AND owner_id = $2
	`

	var plan Plan
	err := r.db.GetContext(ctx, &plan, query, planID, ownerID)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int, includeInactive bool) ([]Plan, error) {
	query := `
		SELECT id, owner_id, name, price_cents, duration_days, features, is_active, is_popular, created_at, updated_at
		FROM membership_plans
		WHERE owner_id = $1
	`

	if !includeInactive {
		query += " AND is_active"
	}

	query += " ORDER BY price_cents ASC"

	plans := []Plan{}
	err := r.db.SelectContext(ctx, &plans, query, ownerID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) Update(ctx context.Context, ownerID, planID int, name string, priceCents int64, durationDays int, features []string, isPopular, isActive bool) (*Plan, error) {
	query := `
		UPDATE membership_plans
		SET name = $1, price_cents = $2, duration_days = $3, features = $4, is_popular = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7 AND owner_id = $8
		RETURNING id, owner_id, name, price_cents, duration_days, features, is_active, is_popular, created_at, updated_at
	`

	var plan Plan
	err := r.db.GetContext(ctx, &plan, query, name, priceCents, durationDays, pq.Array(features), isPopular, isActive, planID, ownerID)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *repository) Disable(ctx context.Context, ownerID, planID int) error {
	query := `
		UPDATE membership_plans
		SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND is_active
	`

	result, err := r.db.ExecContext(ctx, query, planID, ownerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPlanNotFound
	}

	return nil
}

func (r *repository) NameExists(ctx context.Context, ownerID int, name string, excludeID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM membership_plans
			WHERE owner_id = $1 AND name = $2 AND id <> $3
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, ownerID, name, excludeID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	query := `SELECT COUNT(*) FROM membership_plans WHERE owner_id = $1 AND is_active`

	var count int
	err := r.db.GetContext(ctx, &count, query, ownerID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
