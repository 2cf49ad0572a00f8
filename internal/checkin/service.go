package checkin

import (
	"context"
	"strings"
	"time"

	"gymgate/internal/logger"
	"gymgate/internal/member"
	"gymgate/internal/metrics"
)

const (
	ReasonUnknownCode         = "member not found"
	ReasonForeignMember       = "member belongs to another gym"
	ReasonMembershipExpired   = "membership expired"
	ReasonMembershipCancelled = "membership cancelled"
)

type Service interface {
	RecordEntry(ctx context.Context, ownerID int, qrCode string) (*EntryResult, error)
	ListForOwner(ctx context.Context, ownerID int, from, to time.Time, limit, offset int) ([]CheckInWithMember, error)
	StatsForWindow(ctx context.Context, ownerID int, from, to time.Time) (*Stats, error)
	DailyStats(ctx context.Context, ownerID int, from, to time.Time) ([]DailyStats, error)
	HistoryForMember(ctx context.Context, memberID, limit, offset int) ([]CheckIn, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	now        func() time.Time
}

func NewService(repo Repository, memberRepo member.Repository) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		now:        time.Now,
	}
}

// RecordEntry resolves a scanned code and appends exactly one ledger row
// per call, success or failure. Rejections are a domain outcome, not an
// error: the error return is reserved for storage failures.
func (s *service) RecordEntry(ctx context.Context, ownerID int, qrCode string) (*EntryResult, error) {
	code := strings.TrimSpace(qrCode)
	if code == "" {
		return s.reject(ctx, ownerID, nil, code, ReasonUnknownCode)
	}

	m, err := s.memberRepo.FindByQRCode(ctx, code)
	if err != nil {
		return s.reject(ctx, ownerID, nil, code, ReasonUnknownCode)
	}

	if m.OwnerID != ownerID {
		// The foreign member's id stays out of this owner's ledger.
		return s.reject(ctx, ownerID, nil, code, ReasonForeignMember)
	}

	status, daysLeft := member.ComputeStatus(m.MembershipEnd, m.Cancelled, s.now())
	switch status {
	case member.StatusExpired:
		return s.reject(ctx, ownerID, &m.ID, code, ReasonMembershipExpired)
	case member.StatusCancelled:
		return s.reject(ctx, ownerID, &m.ID, code, ReasonMembershipCancelled)
	}

	ci, err := s.repo.Record(ctx, ownerID, &m.ID, code, StatusSuccess, "")
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckIn(string(StatusSuccess))
	logger.Info("entry recorded", "owner_id", ownerID, "member_id", m.ID, "status", "success")

	return &EntryResult{
		OK:      true,
		CheckIn: ci,
		Member: &MemberProfile{
			ID:               m.ID,
			Name:             m.Name,
			PhotoURL:         m.PhotoURL,
			MembershipStatus: string(status),
			ExpireInDays:     daysLeft,
		},
	}, nil
}

func (s *service) reject(ctx context.Context, ownerID int, memberID *int, code, reason string) (*EntryResult, error) {
	ci, err := s.repo.Record(ctx, ownerID, memberID, code, StatusFailed, reason)
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckIn(string(StatusFailed))
	logger.Info("entry rejected", "owner_id", ownerID, "reason", reason)

	return &EntryResult{
		OK:      false,
		Reason:  reason,
		CheckIn: ci,
	}, nil
}

func (s *service) ListForOwner(ctx context.Context, ownerID int, from, to time.Time, limit, offset int) ([]CheckInWithMember, error) {
	return s.repo.ListByOwner(ctx, ownerID, from, to, limit, offset)
}

func (s *service) StatsForWindow(ctx context.Context, ownerID int, from, to time.Time) (*Stats, error) {
	return s.repo.StatsForWindow(ctx, ownerID, from, to)
}

func (s *service) DailyStats(ctx context.Context, ownerID int, from, to time.Time) ([]DailyStats, error) {
	return s.repo.DailyStats(ctx, ownerID, from, to)
}

func (s *service) HistoryForMember(ctx context.Context, memberID, limit, offset int) ([]CheckIn, error) {
	return s.repo.ListByMember(ctx, memberID, limit, offset)
}
