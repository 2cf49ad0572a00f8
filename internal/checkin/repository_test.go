package checkin

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

func checkInRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "member_id", "scanned_code", "status", "reason", "created_at",
	})
}

func TestRecord_SuccessRow(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	memberID := 9
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO check_ins")).
		WithArgs(1, &memberID, "qr-code-1", StatusSuccess, "").
		WillReturnRows(checkInRows().AddRow(100, 1, 9, "qr-code-1", "success", "", now))

	ci, err := repo.Record(context.Background(), 1, &memberID, "qr-code-1", StatusSuccess, "")
	require.NoError(t, err)
	require.Equal(t, 100, ci.ID)
	require.NotNil(t, ci.MemberID)
	require.Equal(t, 9, *ci.MemberID)
}

func TestRecord_UnknownCodeRow(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	// member_id stays NULL for unresolvable scans
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO check_ins")).
		WithArgs(1, nil, "nope", StatusFailed, "member not found").
		WillReturnRows(checkInRows().AddRow(101, 1, nil, "nope", "failed", "member not found", now))

	ci, err := repo.Record(context.Background(), 1, nil, "nope", StatusFailed, "member not found")
	require.NoError(t, err)
	require.Nil(t, ci.MemberID)
	require.Equal(t, StatusFailed, ci.Status)
}

func TestListByOwner_JoinsMemberDetails(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "member_id", "scanned_code", "status", "reason", "created_at",
		"member_name", "member_email", "member_photo",
	}).
		AddRow(100, 1, 9, "qr-code-1", "success", "", now, "Ana", "ana@example.com", "ana.jpg").
		AddRow(101, 1, nil, "nope", "failed", "member not found", now, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN members")).
		WithArgs(1, from, to, 50, 0).
		WillReturnRows(rows)

	checkIns, err := repo.ListByOwner(context.Background(), 1, from, to, 50, 0)
	require.NoError(t, err)
	require.Len(t, checkIns, 2)
	require.NotNil(t, checkIns[0].MemberName)
	require.Equal(t, "Ana", *checkIns[0].MemberName)
	require.Nil(t, checkIns[1].MemberName)
}

func TestStatsForWindow(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER")).
		WithArgs(1, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"total", "successful", "failed"}).AddRow(12, 10, 2))

	stats, err := repo.StatsForWindow(context.Background(), 1, from, to)
	require.NoError(t, err)
	require.Equal(t, 12, stats.Total)
	require.Equal(t, 10, stats.Successful)
	require.Equal(t, 2, stats.Failed)
}

func TestDailyStats(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY DATE(created_at)")).
		WithArgs(1, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "successful", "failed"}).
			AddRow("2025-03-01", 5, 1).
			AddRow("2025-03-02", 7, 0))

	stats, err := repo.DailyStats(context.Background(), 1, from, to)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, "2025-03-01", stats[0].Bucket)
	require.Equal(t, 5, stats[0].Successful)
}
