package member

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func memberRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "plan_id", "name", "email", "phone", "date_of_birth",
		"gender", "address", "photo_url", "qr_code", "password_hash",
		"membership_start", "membership_end", "cancelled", "created_at", "updated_at",
	})
}

func addMemberRow(rows *sqlmock.Rows, id int, start, end time.Time, cancelled bool) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, 1, 5, "Ana", "ana@example.com", "", nil, "", "", "",
		"qr-code-1", "hash", start, end, cancelled, now, now)
}

func TestCreateMember_Repo(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO members")).
		WithArgs(1, 5, "Ana", "ana@example.com", "", nil, "", "", "", "qr-code-1", "hash", start, end).
		WillReturnRows(addMemberRow(memberRows(), 9, start, end, false))

	m, err := repo.Create(context.Background(), 1, CreateParams{
		Name: "Ana", Email: "ana@example.com", PlanID: 5,
		QRCode: "qr-code-1", PasswordHash: "hash",
		MembershipStart: start, MembershipEnd: end,
	})
	require.NoError(t, err)
	require.Equal(t, 9, m.ID)
	require.Equal(t, "qr-code-1", m.QRCode)
}

func TestFindByQRCode(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Now().AddDate(0, 0, -10)
	end := time.Now().AddDate(0, 0, 20)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE qr_code = $1")).
		WithArgs("qr-code-1").
		WillReturnRows(addMemberRow(memberRows(), 9, start, end, false))

	m, err := repo.FindByQRCode(context.Background(), "qr-code-1")
	require.NoError(t, err)
	require.Equal(t, 9, m.ID)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE qr_code = $1")).
		WithArgs("nope").
		WillReturnRows(memberRows())

	_, err = repo.FindByQRCode(context.Background(), "nope")
	require.Error(t, err)
}

func TestFindAllByEmail(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	start := now.AddDate(0, 0, -10)
	end := now.AddDate(0, 0, 20)

	rows := memberRows().
		AddRow(9, 1, 5, "Ana", "ana@example.com", "", nil, "", "", "",
			"qr-code-1", "hash-one", start, end, false, now, now).
		AddRow(31, 2, 8, "Ana", "ana@example.com", "", nil, "", "", "",
			"qr-code-2", "hash-two", start, end, false, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 ORDER BY id")).
		WithArgs("ana@example.com").
		WillReturnRows(rows)

	members, err := repo.FindAllByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, 1, members[0].OwnerID)
	require.Equal(t, 2, members[1].OwnerID)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 ORDER BY id")).
		WithArgs("nobody@example.com").
		WillReturnRows(memberRows())

	members, err = repo.FindAllByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestRenew_ClearsCancelledFlag(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	mock.ExpectQuery(regexp.QuoteMeta("cancelled = false")).
		WithArgs(5, start, end, 9).
		WillReturnRows(addMemberRow(memberRows(), 9, start, end, false))

	m, err := repo.Renew(context.Background(), 9, 5, start, end)
	require.NoError(t, err)
	require.False(t, m.Cancelled)
}

func TestCancelMember(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("SET cancelled = true")).
		WithArgs(9, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 1, 9))

	// repeat cancel affects no rows
	mock.ExpectExec(regexp.QuoteMeta("SET cancelled = true")).
		WithArgs(9, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 1, 9)
	require.Equal(t, ErrMemberNotFoundOrAlreadyCancelled, err)
}

func TestCountByStatus(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER")).
		WithArgs(1, now).
		WillReturnRows(sqlmock.NewRows([]string{"total", "active", "expired", "cancelled"}).
			AddRow(10, 6, 3, 1))

	counts, err := repo.CountByStatus(context.Background(), 1, now)
	require.NoError(t, err)
	require.Equal(t, 10, counts.Total)
	require.Equal(t, 6, counts.Active)
	require.Equal(t, 3, counts.Expired)
	require.Equal(t, 1, counts.Cancelled)
}

func TestExpiringWithin(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("membership_end::date")).
		WithArgs(now, 7).
		WillReturnRows(addMemberRow(memberRows(), 9, now.AddDate(0, 0, -27), now.AddDate(0, 0, 3), false))

	members, err := repo.ExpiringWithin(context.Background(), 7, now)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, 9, members[0].ID)
}
