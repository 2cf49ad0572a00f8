package plan

import "context"

type Repository interface {
	Create(ctx context.Context, ownerID int, name string, priceCents int64, durationDays int, features []string, isPopular bool) (*Plan, error)
	GetForOwner(ctx context.Context, ownerID, planID int) (*Plan, error)
	ListByOwner(ctx context.Context, ownerID int, includeInactive bool) ([]Plan, error)
	Update(ctx context.Context, ownerID, planID int, name string, priceCents int64, durationDays int, features []string, isPopular, isActive bool) (*Plan, error)
	Disable(ctx context.Context, ownerID, planID int) error
	NameExists(ctx context.Context, ownerID int, name string, excludeID int) (bool, error)
	CountByOwner(ctx context.Context, ownerID int) (int, error)
}
