package owner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymgate/internal/auth"
	"gymgate/internal/checkin"
	"gymgate/internal/logger"
	"gymgate/internal/member"
	"gymgate/internal/metrics"
	"gymgate/internal/plan"

	"github.com/gosimple/slug"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOwnerNotFound      = errors.New("owner not found")
	ErrInvalidPlan        = errors.New("unknown subscription plan")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Owner, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Owner, string, string, error)
	GetByID(ctx context.Context, ownerID int) (*Owner, error)
	UpdateProfile(ctx context.Context, ownerID int, req UpdateProfileRequest) (*Owner, error)
	Upgrade(ctx context.Context, ownerID int, req UpgradeRequest) (*Owner, error)
	Dashboard(ctx context.Context, ownerID int) (*Dashboard, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// WelcomeSender is the slice of the email service this package needs at
// registration; satisfied by *email.Service.
type WelcomeSender interface {
	SendOwnerWelcome(ctx context.Context, email, name, gymName string, trialEnd time.Time) error
}

type service struct {
	repo        Repository
	memberRepo  member.Repository
	planRepo    plan.Repository
	checkinRepo checkin.Repository
	email       WelcomeSender
	jwtSecret   string
	trialDays   int
	now         func() time.Time
}

func NewService(repo Repository, memberRepo member.Repository, planRepo plan.Repository, checkinRepo checkin.Repository, emailService WelcomeSender, jwtSecret string, trialDays int) Service {
	return &service{
		repo:        repo,
		memberRepo:  memberRepo,
		planRepo:    planRepo,
		checkinRepo: checkinRepo,
		email:       emailService,
		jwtSecret:   jwtSecret,
		trialDays:   trialDays,
		now:         time.Now,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Owner, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	gymSlug, err := s.uniqueSlug(ctx, req.GymName)
	if err != nil {
		return nil, "", "", err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	now := s.now()
	o, err := s.repo.Create(ctx, req.Name, req.GymName, gymSlug, req.Email, req.Phone, passwordHash,
		now, now.AddDate(0, 0, s.trialDays))
	if err != nil {
		return nil, "", "", err
	}

	metrics.RecordOwnerRegistration()

	if s.email != nil {
		if err := s.email.SendOwnerWelcome(ctx, o.Email, o.Name, o.GymName, o.TrialEnd); err != nil {
			logger.WithError(err).Error("failed to queue welcome email", "owner_id", o.ID)
		}
	}

	accessToken, refreshToken, err := auth.GenerateTokens(o.ID, o.Email, auth.RoleOwner, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	o.Reconcile(now)
	return o, accessToken, refreshToken, nil
}

func (s *service) uniqueSlug(ctx context.Context, gymName string) (string, error) {
	base := slug.Make(gymName)

	candidate := base
	for n := 2; ; n++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Owner, string, string, error) {
	o, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(o.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(o.ID, o.Email, auth.RoleOwner, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	o.Reconcile(s.now())
	return o, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, ownerID int) (*Owner, error) {
	o, err := s.repo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, ErrOwnerNotFound
	}

	o.Reconcile(s.now())
	return o, nil
}

func (s *service) UpdateProfile(ctx context.Context, ownerID int, req UpdateProfileRequest) (*Owner, error) {
	o, err := s.repo.UpdateProfile(ctx, ownerID, req.Name, req.GymName, req.Phone)
	if err != nil {
		return nil, ErrOwnerNotFound
	}

	o.Reconcile(s.now())
	return o, nil
}

func (s *service) Upgrade(ctx context.Context, ownerID int, req UpgradeRequest) (*Owner, error) {
	plan := SubscriptionPlan(req.Plan)
	if plan != PlanBasic && plan != PlanPremium {
		return nil, ErrInvalidPlan
	}

	o, err := s.repo.SetSubscriptionPlan(ctx, ownerID, plan)
	if err != nil {
		return nil, ErrOwnerNotFound
	}

	o.Reconcile(s.now())
	return o, nil
}

func (s *service) Dashboard(ctx context.Context, ownerID int) (*Dashboard, error) {
	o, err := s.repo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, ErrOwnerNotFound
	}

	now := s.now()

	counts, err := s.memberRepo.CountByStatus(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}

	planCount, err := s.planRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := s.checkinRepo.StatsForWindow(ctx, ownerID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Members:       counts,
		PlanCount:     planCount,
		TodayCheckIns: today,
		Subscription:  o.SubscriptionState(now),
		Plan:          o.Plan,
		TrialEnd:      o.TrialEnd,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	newAccessToken, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", err
	}

	// Owners must still exist; member refresh is validated against the
	// token alone, same as the access path.
	if claims.Role == auth.RoleOwner {
		if _, err := s.repo.FindByID(ctx, claims.UserID); err != nil {
			return "", ErrOwnerNotFound
		}
	}

	return newAccessToken, nil
}
