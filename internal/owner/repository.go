package owner

import (
	"context"
	"time"

	"gymgate/internal/db"

	"github.com/jmoiron/sqlx"
)

const ownerColumns = `id, name, gym_name, slug, email, phone, email_verified, phone_verified,
		password_hash, subscription_plan, trial_start, trial_end, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, name, gymName, slug, email, phone, passwordHash string, trialStart, trialEnd time.Time) (*Owner, error) {
	query := `
		INSERT INTO owners (name, gym_name, slug, email, phone, password_hash, subscription_plan, trial_start, trial_end)
		VALUES ($1, $2, $3, $4, $5, $6, 'trial', $7, $8)
		RETURNING ` + ownerColumns

	var o Owner
	err := r.db.GetContext(ctx, &o, query, name, gymName, slug, email, phone, passwordHash, trialStart, trialEnd)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE email = $1`

	var o Owner
	err := r.db.GetContext(ctx, &o, query, email)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE id = $1`

	var o Owner
	err := r.db.GetContext(ctx, &o, query, id)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM owners WHERE email = $1)`, email)
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM owners WHERE slug = $1)`, slug)
}

func (r *repository) UpdateProfile(ctx context.Context, id int, name, gymName, phone string) (*Owner, error) {
	query := `
		UPDATE owners
		SET name = $1, gym_name = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + ownerColumns

	var o Owner
	err := r.db.GetContext(ctx, &o, query, name, gymName, phone, id)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) SetSubscriptionPlan(ctx context.Context, id int, plan SubscriptionPlan) (*Owner, error) {
	query := `
		UPDATE owners
		SET subscription_plan = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + ownerColumns

	var o Owner
	err := r.db.GetContext(ctx, &o, query, plan, id)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) GymName(ctx context.Context, id int) (string, error) {
	var gymName string
	err := r.db.GetContext(ctx, &gymName, `SELECT gym_name FROM owners WHERE id = $1`, id)
	if err != nil {
		return "", err
	}

	return gymName, nil
}
