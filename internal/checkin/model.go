package checkin

import "time"

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// CheckIn is one row of the scan ledger. Rows are append-only: never
// mutated, never deleted. MemberID is nil when the scanned code did not
// resolve to a member of the scanning owner.
type CheckIn struct {
	ID          int       `db:"id" json:"id"`
	OwnerID     int       `db:"owner_id" json:"owner_id"`
	MemberID    *int      `db:"member_id" json:"member_id,omitempty"`
	ScannedCode string    `db:"scanned_code" json:"scanned_code"`
	Status      Status    `db:"status" json:"status"`
	Reason      string    `db:"reason" json:"reason,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CheckInWithMember struct {
	CheckIn
	MemberName  *string `db:"member_name" json:"member_name,omitempty"`
	MemberEmail *string `db:"member_email" json:"member_email,omitempty"`
	MemberPhoto *string `db:"member_photo" json:"member_photo,omitempty"`
}

type Stats struct {
	Total      int `db:"total" json:"total"`
	Successful int `db:"successful" json:"successful"`
	Failed     int `db:"failed" json:"failed"`
}

type DailyStats struct {
	Bucket     string `db:"bucket" json:"bucket"`
	Successful int    `db:"successful" json:"successful"`
	Failed     int    `db:"failed" json:"failed"`
}

// EntryRequest carries the raw scanner payload. The code is deliberately
// unvalidated here: a blank or garbage scan still gets a failed ledger row.
type EntryRequest struct {
	QRCode string `json:"qr_code"`
}

// MemberProfile is the public slice of the member returned to the scanner
// on a successful entry.
type MemberProfile struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	PhotoURL         string `json:"photo_url"`
	MembershipStatus string `json:"membership_status"`
	ExpireInDays     int    `json:"expire_in_days"`
}

type EntryResult struct {
	OK      bool           `json:"ok"`
	Reason  string         `json:"reason,omitempty"`
	CheckIn *CheckIn       `json:"check_in"`
	Member  *MemberProfile `json:"member,omitempty"`
}
