package owner

import (
	"time"

	"gymgate/internal/checkin"
	"gymgate/internal/member"
)

type SubscriptionPlan string
type SubscriptionStatus string

const (
	PlanTrial   SubscriptionPlan = "trial"
	PlanBasic   SubscriptionPlan = "basic"
	PlanPremium SubscriptionPlan = "premium"

	StatusTrialing SubscriptionStatus = "trialing"
	StatusActive   SubscriptionStatus = "active"
	StatusExpired  SubscriptionStatus = "expired"
)

type Owner struct {
	ID            int              `db:"id" json:"id"`
	Name          string           `db:"name" json:"name"`
	GymName       string           `db:"gym_name" json:"gym_name"`
	Slug          string           `db:"slug" json:"slug"`
	Email         string           `db:"email" json:"email"`
	Phone         string           `db:"phone" json:"phone"`
	EmailVerified bool             `db:"email_verified" json:"email_verified"`
	PhoneVerified bool             `db:"phone_verified" json:"phone_verified"`
	PasswordHash  string           `db:"password_hash" json:"-"`
	Plan          SubscriptionPlan `db:"subscription_plan" json:"subscription_plan"`
	TrialStart    time.Time        `db:"trial_start" json:"trial_start"`
	TrialEnd      time.Time        `db:"trial_end" json:"trial_end"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`

	// Derived on read.
	SubscriptionStatus SubscriptionStatus `db:"-" json:"subscription_status"`
}

// SubscriptionState derives the subscription status: paid plans are active,
// a trial plan depends on the trial window.
func (o *Owner) SubscriptionState(now time.Time) SubscriptionStatus {
	if o.Plan != PlanTrial {
		return StatusActive
	}
	if now.Before(o.TrialEnd) {
		return StatusTrialing
	}
	return StatusExpired
}

func (o *Owner) Reconcile(now time.Time) {
	o.SubscriptionStatus = o.SubscriptionState(now)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	GymName  string `json:"gym_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Owner        Owner  `json:"owner"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	GymName string `json:"gym_name" binding:"required"`
	Phone   string `json:"phone"`
}

type UpgradeRequest struct {
	Plan string `json:"plan" binding:"required,oneof=basic premium"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type Dashboard struct {
	Members       *member.StatusCounts `json:"members"`
	PlanCount     int                  `json:"plan_count"`
	TodayCheckIns *checkin.Stats       `json:"today_check_ins"`
	Subscription  SubscriptionStatus   `json:"subscription_status"`
	Plan          SubscriptionPlan     `json:"subscription_plan"`
	TrialEnd      time.Time            `json:"trial_end"`
}
