package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogAPI/internal/models"
)

func userColumns() []string {
	return []string{"id", "username", "email", "password_hash", "role", "created_at", "updated_at"}
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()

	username := "testuser"
	email := "test@example.com"
	password := "Password123"

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		user := &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleAuthor,
		}

		mock.ExpectQuery(`
			INSERT INTO users (username, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`).
			WithArgs(username, email, sqlmock.AnyArg(), models.RoleAuthor).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(1), time.Now(), time.Now()))

		err := repo.CreateUser(ctx, user, password)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.NotEqual(t, password, user.PasswordHash)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Роль по умолчанию reader", func(t *testing.T) {
		user := &models.User{
			Username: username,
			Email:    email,
		}

		mock.ExpectQuery(`
			INSERT INTO users (username, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`).
			WithArgs(username, email, sqlmock.AnyArg(), models.RoleReader).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(2), time.Now(), time.Now()))

		err := repo.CreateUser(ctx, user, password)

		assert.NoError(t, err)
		assert.Equal(t, models.RoleReader, user.Role)
	})

	t.Run("Ошибка при дублировании username", func(t *testing.T) {
		user := &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleAuthor,
		}

		mock.ExpectQuery(`
			INSERT INTO users (username, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`).
			WithArgs(username, email, sqlmock.AnyArg(), models.RoleAuthor).
			WillReturnError(errors.New("duplicate key value violates unique constraint \"users_username_key\""))

		err := repo.CreateUser(ctx, user, password)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "пользователь уже существует")
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	userID := int64(42)

	t.Run("Успешное получение пользователя по ID", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow(userID, "testuser", "test@example.com", "hashed_password", models.RoleAuthor, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT * FROM users WHERE id = $1`).
			WithArgs(userID).
			WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, models.RoleAuthor, user.Role)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE id = $1`).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(ctx, userID)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "не найден")
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE id = $1`).
			WithArgs(userID).
			WillReturnError(errors.New("connection failed"))

		user, err := repo.GetUserByID(ctx, userID)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "ошибка при получении пользователя")
	})
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	username := "testuser"

	t.Run("Успешное получение по username", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow(int64(1), username, "test@example.com", "hashed_password", models.RoleReader, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs(username).
			WillReturnRows(rows)

		user, err := repo.GetUserByUsername(ctx, username)

		require.NoError(t, err)
		assert.Equal(t, username, user.Username)
		assert.Equal(t, models.RoleReader, user.Role)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs(username).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByUsername(ctx, username)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "не найден")
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	username := "testuser"
	password := "Correct_password1"
	wrongPassword := "Wrong_password1"

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("Успешная проверка пароля", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow(int64(1), username, "test@example.com", string(hashedPassword), models.RoleAuthor, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs(username).
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, username, password)

		require.NoError(t, err)
		assert.Equal(t, username, user.Username)
		assert.Equal(t, models.RoleAuthor, user.Role)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow(int64(1), username, "test@example.com", string(hashedPassword), models.RoleAuthor, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs(username).
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, username, wrongPassword)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "неверный пароль")
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs(username).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.VerifyPassword(ctx, username, password)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "не найден")
	})
}

func TestUserRepository_UpdateUser(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	user := &models.User{
		ID:           7,
		Username:     "updated",
		Email:        "updated@example.com",
		PasswordHash: "hashed_password",
		Role:         models.RoleReader,
	}

	t.Run("Успешное обновление пользователя", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET username = ?, email = ?, password_hash = ?, role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`).
			WithArgs(user.Username, user.Email, user.PasswordHash, user.Role, user.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateUser(ctx, user)

		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден при обновлении", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET username = ?, email = ?, password_hash = ?, role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`).
			WithArgs(user.Username, user.Email, user.PasswordHash, user.Role, user.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateUser(ctx, user)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "не найден")
	})

	t.Run("Ошибка при дублировании email", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET username = ?, email = ?, password_hash = ?, role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`).
			WithArgs(user.Username, user.Email, user.PasswordHash, user.Role, user.ID).
			WillReturnError(errors.New("duplicate key value violates unique constraint \"users_email_key\""))

		err := repo.UpdateUser(ctx, user)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "уже заняты")
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	userID := int64(7)

	t.Run("Успешное удаление пользователя", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = $1`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteUser(ctx, userID)

		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден при удалении", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = $1`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteUser(ctx, userID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "не найден")
	})
}

//go test ./internal/repository/... -v
