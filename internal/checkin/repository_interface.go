package checkin

import (
	"context"
	"time"
)

type Repository interface {
	Record(ctx context.Context, ownerID int, memberID *int, scannedCode string, status Status, reason string) (*CheckIn, error)
	ListByOwner(ctx context.Context, ownerID int, from, to time.Time, limit, offset int) ([]CheckInWithMember, error)
	ListByMember(ctx context.Context, memberID, limit, offset int) ([]CheckIn, error)
	StatsForWindow(ctx context.Context, ownerID int, from, to time.Time) (*Stats, error)
	DailyStats(ctx context.Context, ownerID int, from, to time.Time) ([]DailyStats, error)
}
