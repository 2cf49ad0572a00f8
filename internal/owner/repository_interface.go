package owner

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, name, gymName, slug, email, phone, passwordHash string, trialStart, trialEnd time.Time) (*Owner, error)
	FindByEmail(ctx context.Context, email string) (*Owner, error)
	FindByID(ctx context.Context, id int) (*Owner, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	UpdateProfile(ctx context.Context, id int, name, gymName, phone string) (*Owner, error)
	SetSubscriptionPlan(ctx context.Context, id int, plan SubscriptionPlan) (*Owner, error)
	GymName(ctx context.Context, id int) (string, error)
}
