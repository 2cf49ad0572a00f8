package member

import (
	"context"
	"errors"
	"time"

	"gymgate/internal/auth"
	"gymgate/internal/email"
	"gymgate/internal/logger"
	"gymgate/internal/metrics"
	"gymgate/internal/plan"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrEmailExists        = errors.New("a member with this email already exists")
	ErrPlanUnavailable    = errors.New("plan not found or disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidBirthDate   = errors.New("invalid date of birth")
)

type Service interface {
	Create(ctx context.Context, ownerID int, req CreateMemberRequest) (*Member, error)
	Login(ctx context.Context, req LoginRequest) (*Member, string, string, error)
	Get(ctx context.Context, ownerID, memberID int) (*Member, error)
	GetSelf(ctx context.Context, memberID int) (*Member, error)
	List(ctx context.Context, ownerID, limit, offset int) ([]Member, error)
	Update(ctx context.Context, ownerID, memberID int, req UpdateMemberRequest) (*Member, error)
	Renew(ctx context.Context, ownerID, memberID, planID int) (*Member, error)
	Cancel(ctx context.Context, ownerID, memberID int) error
}

// OwnerDirectory is the slice of the owner store this package needs for
// email templates; satisfied by the owner repository.
type OwnerDirectory interface {
	GymName(ctx context.Context, ownerID int) (string, error)
}

type service struct {
	repo      Repository
	planRepo  plan.Repository
	owners    OwnerDirectory
	email     *email.Service
	jwtSecret string
	now       func() time.Time
}

func NewService(repo Repository, planRepo plan.Repository, owners OwnerDirectory, emailService *email.Service, jwtSecret string) Service {
	return &service{
		repo:      repo,
		planRepo:  planRepo,
		owners:    owners,
		email:     emailService,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, ownerID int, req CreateMemberRequest) (*Member, error) {
	exists, err := s.repo.EmailExistsForOwner(ctx, ownerID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	p, err := s.planRepo.GetForOwner(ctx, ownerID, req.PlanID)
	if err != nil || !p.IsActive {
		return nil, ErrPlanUnavailable
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		dob = &parsed
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// The plan duration is converted into a concrete end date here; later
	// plan edits never touch it.
	now := s.now()
	params := CreateParams{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		DateOfBirth:     dob,
		Gender:          req.Gender,
		Address:         req.Address,
		PhotoURL:        req.PhotoURL,
		PlanID:          p.ID,
		QRCode:          uuid.NewString(),
		PasswordHash:    passwordHash,
		MembershipStart: now,
		MembershipEnd:   now.AddDate(0, 0, p.DurationDays),
	}

	m, err := s.repo.Create(ctx, ownerID, params)
	if err != nil {
		return nil, err
	}

	metrics.RecordMemberRegistration()
	m.Reconcile(now)

	if s.email != nil {
		gymName, err := s.owners.GymName(ctx, ownerID)
		if err != nil {
			gymName = "your gym"
		}
		if err := s.email.SendMemberWelcome(ctx, m.Email, m.Name, gymName, p.Name, m.MembershipEnd); err != nil {
			logger.WithError(err).Error("failed to queue welcome email", "member_id", m.ID)
		}
	}

	return m, nil
}

// Login resolves an email to an account. The same address can be enrolled
// at several gyms, so the password decides which account matches.
func (s *service) Login(ctx context.Context, req LoginRequest) (*Member, string, string, error) {
	candidates, err := s.repo.FindAllByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	for i := range candidates {
		m := &candidates[i]
		if !auth.CheckPassword(m.PasswordHash, req.Password) {
			continue
		}

		accessToken, refreshToken, err := auth.GenerateTokens(m.ID, m.Email, auth.RoleMember, s.jwtSecret)
		if err != nil {
			return nil, "", "", err
		}

		m.Reconcile(s.now())
		return m, accessToken, refreshToken, nil
	}

	return nil, "", "", ErrInvalidCredentials
}

func (s *service) Get(ctx context.Context, ownerID, memberID int) (*Member, error) {
	m, err := s.repo.GetForOwner(ctx, ownerID, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	m.Reconcile(s.now())
	return m, nil
}

func (s *service) GetSelf(ctx context.Context, memberID int) (*Member, error) {
	m, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	m.Reconcile(s.now())
	return m, nil
}

func (s *service) List(ctx context.Context, ownerID, limit, offset int) ([]Member, error) {
	members, err := s.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range members {
		members[i].Reconcile(now)
	}
	return members, nil
}

func (s *service) Update(ctx context.Context, ownerID, memberID int, req UpdateMemberRequest) (*Member, error) {
	m, err := s.repo.UpdateContact(ctx, ownerID, memberID, req)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	m.Reconcile(s.now())
	return m, nil
}

// Renew assigns a plan and extends the membership. While the current period
// is still active the new period starts where the old one ends; an expired
// or cancelled membership restarts from now.
func (s *service) Renew(ctx context.Context, ownerID, memberID, planID int) (*Member, error) {
	m, err := s.repo.GetForOwner(ctx, ownerID, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	p, err := s.planRepo.GetForOwner(ctx, ownerID, planID)
	if err != nil || !p.IsActive {
		return nil, ErrPlanUnavailable
	}

	now := s.now()
	status, _ := ComputeStatus(m.MembershipEnd, m.Cancelled, now)

	start := now
	end := now.AddDate(0, 0, p.DurationDays)
	if status == StatusActive {
		start = m.MembershipStart
		end = m.MembershipEnd.AddDate(0, 0, p.DurationDays)
	}

	renewed, err := s.repo.Renew(ctx, memberID, p.ID, start, end)
	if err != nil {
		return nil, err
	}

	metrics.RecordRenewal()
	renewed.Reconcile(now)

	if s.email != nil {
		if err := s.email.SendRenewalConfirmation(ctx, renewed.Email, renewed.Name, p.Name, renewed.MembershipEnd); err != nil {
			logger.WithError(err).Error("failed to queue renewal email", "member_id", renewed.ID)
		}
	}

	return renewed, nil
}

func (s *service) Cancel(ctx context.Context, ownerID, memberID int) error {
	err := s.repo.Cancel(ctx, ownerID, memberID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFoundOrAlreadyCancelled) {
			return ErrMemberNotFound
		}
		return err
	}

	metrics.RecordCancellation()
	return nil
}
