package member

import (
	"context"
	"time"
)

type CreateParams struct {
	Name            string
	Email           string
	Phone           string
	DateOfBirth     *time.Time
	Gender          string
	Address         string
	PhotoURL        string
	PlanID          int
	QRCode          string
	PasswordHash    string
	MembershipStart time.Time
	MembershipEnd   time.Time
}

type Repository interface {
	Create(ctx context.Context, ownerID int, params CreateParams) (*Member, error)
	GetForOwner(ctx context.Context, ownerID, memberID int) (*Member, error)
	FindByID(ctx context.Context, id int) (*Member, error)
	FindAllByEmail(ctx context.Context, email string) ([]Member, error)
	FindByQRCode(ctx context.Context, code string) (*Member, error)
	EmailExistsForOwner(ctx context.Context, ownerID int, email string) (bool, error)
	ListByOwner(ctx context.Context, ownerID, limit, offset int) ([]Member, error)
	UpdateContact(ctx context.Context, ownerID, memberID int, req UpdateMemberRequest) (*Member, error)
	Renew(ctx context.Context, memberID, planID int, start, end time.Time) (*Member, error)
	Cancel(ctx context.Context, ownerID, memberID int) error
	CountByStatus(ctx context.Context, ownerID int, now time.Time) (*StatusCounts, error)
	ExpiringWithin(ctx context.Context, days int, now time.Time) ([]Member, error)
}
