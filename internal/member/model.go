package member

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

type Member struct {
	ID           int        `db:"id" json:"id"`
	OwnerID      int        `db:"owner_id" json:"owner_id"`
	PlanID       int        `db:"plan_id" json:"plan_id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	Phone        string     `db:"phone" json:"phone"`
	DateOfBirth  *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender       string     `db:"gender" json:"gender"`
	Address      string     `db:"address" json:"address"`
	PhotoURL     string     `db:"photo_url" json:"photo_url"`
	QRCode       string     `db:"qr_code" json:"qr_code"`
	PasswordHash string     `db:"password_hash" json:"-"`

	MembershipStart time.Time `db:"membership_start" json:"membership_start"`
	MembershipEnd   time.Time `db:"membership_end" json:"membership_end"`
	Cancelled       bool      `db:"cancelled" json:"cancelled"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Derived on every read; never persisted.
	MembershipStatus Status `db:"-" json:"membership_status"`
	ExpireInDays     int    `db:"-" json:"expire_in_days"`
}

// ComputeStatus derives the membership state from the concrete end date.
// daysLeft counts whole calendar days from now until end; the boundary day
// (daysLeft == 0) is still active. An administrative cancellation overrides
// the date-derived state.
func ComputeStatus(end time.Time, cancelled bool, now time.Time) (Status, int) {
	daysLeft := daysBetween(now, end)

	if cancelled {
		return StatusCancelled, daysLeft
	}
	if daysLeft < 0 {
		return StatusExpired, daysLeft
	}
	return StatusActive, daysLeft
}

func daysBetween(from, to time.Time) int {
	// Both sides truncate on the UTC calendar; membership_end may come back
	// from the driver in a different zone than the server clock.
	from, to = from.UTC(), to.UTC()
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDate.Sub(fromDate).Hours() / 24)
}

// Reconcile recomputes the derived fields against now.
func (m *Member) Reconcile(now time.Time) {
	m.MembershipStatus, m.ExpireInDays = ComputeStatus(m.MembershipEnd, m.Cancelled, now)
}

type CreateMemberRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female other"`
	Address     string `json:"address"`
	PhotoURL    string `json:"photo_url"`
	PlanID      int    `json:"plan_id" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

type UpdateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender" binding:"omitempty,oneof=male female other"`
	Address  string `json:"address"`
	PhotoURL string `json:"photo_url"`
}

type RenewRequest struct {
	PlanID int `json:"plan_id" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Member       Member `json:"member"`
}

type QRResponse struct {
	QRCode string `json:"qr_code"`
}

// StatusCounts is the dashboard breakdown; derived from concrete dates in
// SQL so counting stays consistent with ComputeStatus.
type StatusCounts struct {
	Total     int `db:"total" json:"total"`
	Active    int `db:"active" json:"active"`
	Expired   int `db:"expired" json:"expired"`
	Cancelled int `db:"cancelled" json:"cancelled"`
}
