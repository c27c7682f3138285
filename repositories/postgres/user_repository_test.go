package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &DB{DB: mockDB, logger: zap.NewNop()}, mock
}

func userColumns() []string {
	return []string{"id", "email", "password", "name", "tc_no", "role", "created_at", "updated_at"}
}

func userRow(user *models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns()).AddRow(
		user.ID, user.Email, user.PasswordHash, user.Name, user.TcNo,
		user.Role, user.CreatedAt, user.UpdatedAt,
	)
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	user := models.NewUser("aylin@bakircay.edu.tr", "hashed", "Aylin Demir", "12345678901", models.RoleStudent)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.TcNo,
			user.Role, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	user := models.NewUser("taken@bakircay.edu.tr", "hashed", "Mevcut Kisi", "11111111111", models.RoleAdmin)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(context.Background(), user)

	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	user := models.NewUser("aylin@bakircay.edu.tr", "hashed", "Aylin Demir", "12345678901", models.RoleStudent)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(user.Email).
		WillReturnRows(userRow(user))

	got, err := repo.GetByEmail(context.Background(), user.Email)

	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, models.RoleStudent, got.Role)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@bakircay.edu.tr").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	got, err := repo.GetByEmail(context.Background(), "ghost@bakircay.edu.tr")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	first := models.NewUser("a@bakircay.edu.tr", "h1", "A", "11111111111", models.RoleStudent)
	second := models.NewUser("b@bakircay.edu.tr", "h2", "B", "22222222222", models.RoleTeacher)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(first.ID, first.Email, first.PasswordHash, first.Name, first.TcNo,
				first.Role, first.CreatedAt, first.UpdatedAt).
			AddRow(second.ID, second.Email, second.PasswordHash, second.Name, second.TcNo,
				second.Role, second.CreatedAt, second.UpdatedAt))

	users, total, err := repo.List(context.Background(), repositories.ListParams{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 23, total)
	require.Len(t, users, 2)
	assert.Equal(t, first.Email, users[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	user := models.NewUser("gone@bakircay.edu.tr", "hashed", "Gitmis", "33333333333", models.RoleStudent)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), user)

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	mock.ExpectExec("DELETE FROM users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
