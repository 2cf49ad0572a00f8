package owner

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

func ownerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "gym_name", "slug", "email", "phone", "email_verified", "phone_verified",
		"password_hash", "subscription_plan", "trial_start", "trial_end", "created_at", "updated_at",
	})
}

func addOwnerRow(rows *sqlmock.Rows, id int, plan string, trialStart, trialEnd time.Time) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "Sam", "Iron Temple", "iron-temple", "owner@example.com", "",
		false, false, "hash", plan, trialStart, trialEnd, now, now)
}

func TestCreateOwner(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	trialStart := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	trialEnd := trialStart.AddDate(0, 0, 14)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO owners")).
		WithArgs("Sam", "Iron Temple", "iron-temple", "owner@example.com", "", "hash", trialStart, trialEnd).
		WillReturnRows(addOwnerRow(ownerRows(), 7, "trial", trialStart, trialEnd))

	o, err := repo.Create(context.Background(), "Sam", "Iron Temple", "iron-temple",
		"owner@example.com", "", "hash", trialStart, trialEnd)
	require.NoError(t, err)
	require.Equal(t, 7, o.ID)
	require.Equal(t, PlanTrial, o.Plan)
}

func TestFindByEmail_Owner(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM owners WHERE email = $1")).
		WithArgs("owner@example.com").
		WillReturnRows(addOwnerRow(ownerRows(), 7, "trial", now, now.AddDate(0, 0, 14)))

	o, err := repo.FindByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	require.Equal(t, "owner@example.com", o.Email)
}

func TestSlugExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM owners WHERE slug = $1)")).
		WithArgs("iron-temple").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.SlugExists(context.Background(), "iron-temple")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestSetSubscriptionPlan(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SET subscription_plan = $1")).
		WithArgs(PlanPremium, 7).
		WillReturnRows(addOwnerRow(ownerRows(), 7, "premium", now, now))

	o, err := repo.SetSubscriptionPlan(context.Background(), 7, PlanPremium)
	require.NoError(t, err)
	require.Equal(t, PlanPremium, o.Plan)
}

func TestGymName(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT gym_name FROM owners WHERE id = $1")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"gym_name"}).AddRow("Iron Temple"))

	name, err := repo.GymName(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Iron Temple", name)
}
