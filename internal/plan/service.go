package plan

import (
	"context"
	"errors"
	"strings"

	"gymgate/internal/metrics"
)

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrDuplicatePlanName = errors.New("a plan with this name already exists")
)

type Service interface {
	Create(ctx context.Context, ownerID int, req CreatePlanRequest) (*Plan, error)
	Get(ctx context.Context, ownerID, planID int) (*Plan, error)
	List(ctx context.Context, ownerID int, includeInactive bool) ([]Plan, error)
	Update(ctx context.Context, ownerID, planID int, req UpdatePlanRequest) (*Plan, error)
	Disable(ctx context.Context, ownerID, planID int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID int, req CreatePlanRequest) (*Plan, error) {
	name := strings.TrimSpace(req.Name)

	exists, err := s.repo.NameExists(ctx, ownerID, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePlanName
	}

	plan, err := s.repo.Create(ctx, ownerID, name, req.PriceCents, req.DurationDays, req.Features, req.IsPopular)
	if err != nil {
		return nil, err
	}

	metrics.RecordPlanCreated()
	return plan, nil
}

func (s *service) Get(ctx context.Context, ownerID, planID int) (*Plan, error) {
	plan, err := s.repo.GetForOwner(ctx, ownerID, planID)
	if err != nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (s *service) List(ctx context.Context, ownerID int, includeInactive bool) ([]Plan, error) {
	return s.repo.ListByOwner(ctx, ownerID, includeInactive)
}

func (s *service) Update(ctx context.Context, ownerID, planID int, req UpdatePlanRequest) (*Plan, error) {
	if _, err := s.repo.GetForOwner(ctx, ownerID, planID); err != nil {
		return nil, ErrPlanNotFound
	}

	name := strings.TrimSpace(req.Name)
	exists, err := s.repo.NameExists(ctx, ownerID, name, planID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePlanName
	}

	return s.repo.Update(ctx, ownerID, planID, name, req.PriceCents, req.DurationDays, req.Features, req.IsPopular, req.IsActive)
}

func (s *service) Disable(ctx context.Context, ownerID, planID int) error {
	return s.repo.Disable(ctx, ownerID, planID)
}
