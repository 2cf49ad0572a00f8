package member

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFoundOrAlreadyCancelled = errors.New("member not found or already cancelled")

const memberColumns = `id, owner_id, plan_id, name, email, phone, date_of_birth, gender, address, photo_url,
		qr_code, password_hash, membership_start, membership_end, cancelled, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ownerID int, params CreateParams) (*Member, error) {
	query := `
		INSERT INTO members (owner_id, plan_id, name, email, phone, date_of_birth, gender, address, photo_url,
			qr_code, password_hash, membership_start, membership_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query,
		ownerID, params.PlanID, params.Name, params.Email, params.Phone, params.DateOfBirth,
		params.Gender, params.Address, params.PhotoURL, params.QRCode, params.PasswordHash,
		params.MembershipStart, params.MembershipEnd,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetForOwner(ctx context.Context, ownerID, memberID int) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1 AND owner_id = $2`

	var m Member
	err := r.db.GetContext(ctx, &m, query, memberID, ownerID)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// FindAllByEmail returns every account registered under the address, oldest
// first. The same person can hold memberships at several gyms.
func (r *repository) FindAllByEmail(ctx context.Context, email string) ([]Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email = $1 ORDER BY id`

	members := []Member{}
	if err := r.db.SelectContext(ctx, &members, query, email); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) FindByQRCode(ctx context.Context, code string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE qr_code = $1`

	var m Member
	err := r.db.GetContext(ctx, &m, query, code)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) EmailExistsForOwner(ctx context.Context, ownerID int, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE owner_id = $1 AND email = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, ownerID, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID, limit, offset int) ([]Member, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	members := []Member{}
	err := r.db.SelectContext(ctx, &members, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) UpdateContact(ctx context.Context, ownerID, memberID int, req UpdateMemberRequest) (*Member, error) {
	query := `
		UPDATE members
		SET name = $1, phone = $2, gender = $3, address = $4, photo_url = $5, updated_at = NOW()
		WHERE id = $6 AND owner_id = $7
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, req.Name, req.Phone, req.Gender, req.Address, req.PhotoURL, memberID, ownerID)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Renew(ctx context.Context, memberID, planID int, start, end time.Time) (*Member, error) {
	query := `
		UPDATE members
		SET plan_id = $1, membership_start = $2, membership_end = $3, cancelled = false, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, planID, start, end, memberID)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Cancel(ctx context.Context, ownerID, memberID int) error {
	query := `
		UPDATE members
		SET cancelled = true, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND NOT cancelled
	`

	result, err := r.db.ExecContext(ctx, query, memberID, ownerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMemberNotFoundOrAlreadyCancelled
	}

	return nil
}

func (r *repository) CountByStatus(ctx context.Context, ownerID int, now time.Time) (*StatusCounts, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE NOT cancelled AND membership_end::date >= $2::date) AS active,
			COUNT(*) FILTER (WHERE NOT cancelled AND membership_end::date < $2::date)  AS expired,
			COUNT(*) FILTER (WHERE cancelled) AS cancelled
		FROM members
		WHERE owner_id = $1
	`

	var counts StatusCounts
	err := r.db.GetContext(ctx, &counts, query, ownerID, now)
	if err != nil {
		return nil, err
	}

	return &counts, nil
}

func (r *repository) ExpiringWithin(ctx context.Context, days int, now time.Time) ([]Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE NOT cancelled
		  AND membership_end::date >= $1::date
		  AND membership_end::date <= ($1::date + $2 * INTERVAL '1 day')
		ORDER BY membership_end ASC
	`

	members := []Member{}
	err := r.db.SelectContext(ctx, &members, query, now, days)
	if err != nil {
		return nil, err
	}

	return members, nil
}
