package repository

import (
	"context"
	"testing"
	"time"

	"chatlog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoMock(t *testing.T) (pgxmock.PgxPoolIface, UserRepository) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	user := &model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		Enabled:      true,
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.Username, user.Email, user.PasswordHash, user.Role, user.Enabled, user.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))

	err := repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "other@example.com", "hash", model.RoleUser, true, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), &model.User{
		Username: "alice", Email: "other@example.com", PasswordHash: "hash",
		Role: model.RoleUser, Enabled: true,
	})

	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("bob", "alice@example.com", "hash", model.RoleUser, true, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &model.User{
		Username: "bob", Email: "alice@example.com", PasswordHash: "hash",
		Role: model.RoleUser, Enabled: true,
	})

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	createdAt := time.Now()
	mock.ExpectQuery(`SELECT id, username, email, password_hash, role, enabled, created_at FROM users`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "enabled", "created_at"}).
			AddRow(1, "alice", "alice@example.com", "hash", model.RoleResearcher, true, createdAt))

	user, err := repo.FindByUsername(context.Background(), "alice")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, model.RoleResearcher, user.Role)
	assert.True(t, user.Enabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, role, enabled, created_at FROM users`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByUsername(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "alice")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByEmail(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
