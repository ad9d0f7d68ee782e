package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketcook/auth-service/internal/domain"
)

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewUserRepo(db), mock
}

func userColumns() []string {
	return []string{"id", "full_name", "email", "password_hash", "created_at"}
}

func TestUserRepo_GetByEmail_Found(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(userColumns()).
		AddRow("u1", "Ann", "ann@x.com", "$2a$10$hash", time.Now())
	mock.ExpectQuery(`SELECT id, full_name, email, password_hash, created_at\s+FROM users\s+WHERE email =`).
		WithArgs("ann@x.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), " Ann@X.com ")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "ann@x.com", u.Email)
	assert.Equal(t, "Ann", u.FullName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM users\s+WHERE email =`).
		WithArgs("missing@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.GetByEmail(context.Background(), "missing@x.com")
	require.Error(t, err)
	assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
}

func TestUserRepo_GetByEmail_EmptyEmail(t *testing.T) {
	t.Parallel()

	repo, _ := newMockRepo(t)

	_, err := repo.GetByEmail(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, domain.Is(err, "missing_field"))
}

func TestUserRepo_GetByFullName_Found(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(userColumns()).
		AddRow("u1", "Ann", "ann@x.com", "$2a$10$hash", time.Now())
	mock.ExpectQuery(`FROM users\s+WHERE full_name =`).
		WithArgs("Ann").
		WillReturnRows(rows)

	u, err := repo.GetByFullName(context.Background(), "Ann")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestUserRepo_GetByID_DBError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM users\s+WHERE id =`).
		WithArgs("u1").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.GetByID(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, domain.Is(err, "db_unavailable"), "got %v", err)
}

func TestUserRepo_Create_ReturnsInserted(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(userColumns()).
		AddRow("u1", "Ann", "ann@x.com", "$2a$10$hash", time.Now())
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "Ann", "ann@x.com", "$2a$10$hash").
		WillReturnRows(rows)

	u, err := repo.Create(context.Background(), domain.User{
		ID:           "u1",
		FullName:     "Ann",
		Email:        "Ann@X.com",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", u.Email)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

	_, err := repo.Create(context.Background(), domain.User{
		ID:           "u2",
		FullName:     "Ann Again",
		Email:        "ann@x.com",
		PasswordHash: "$2a$10$other",
	})
	require.Error(t, err)
	assert.True(t, domain.Is(err, "email_already_registered"), "got %v", err)
}

func TestUserRepo_Create_MissingFields(t *testing.T) {
	t.Parallel()

	repo, _ := newMockRepo(t)

	_, err := repo.Create(context.Background(), domain.User{FullName: "Ann"})
	require.Error(t, err)
	assert.True(t, domain.Is(err, "missing_field"))
}
