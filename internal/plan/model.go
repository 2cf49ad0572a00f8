package plan

import (
	"time"

	"github.com/lib/pq"
)

type Plan struct {
	ID           int            `db:"id" json:"id"`
	OwnerID      int            `db:"owner_id" json:"owner_id"`
	Name         string         `db:"name" json:"name"`
	PriceCents   int64          `db:"price_cents" json:"price_cents"`
	DurationDays int            `db:"duration_days" json:"duration_days"`
	Features     pq.StringArray `db:"features" json:"features" swaggertype:"array,string"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	IsPopular    bool           `db:"is_popular" json:"is_popular"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

type CreatePlanRequest struct {
	Name         string   `json:"name" binding:"required"`
	PriceCents   int64    `json:"price_cents" binding:"gte=0"`
	DurationDays int      `json:"duration_days" binding:"required,min=1"`
	Features     []string `json:"features"`
	IsPopular    bool     `json:"is_popular"`
}

type UpdatePlanRequest struct {
	Name         string   `json:"name" binding:"required"`
	PriceCents   int64    `json:"price_cents" binding:"gte=0"`
	DurationDays int      `json:"duration_days" binding:"required,min=1"`
	Features     []string `json:"features"`
	IsPopular    bool     `json:"is_popular"`
	IsActive     bool     `json:"is_active"`
}
