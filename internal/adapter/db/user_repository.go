package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/gregsyu/task-manager/internal/core/domain"
	"github.com/gregsyu/task-manager/internal/core/ports"
)

const mysqlErrDuplicateEntry = 1062

const (
	insertUserQuery = `
INSERT INTO users (username, email, password_hash, full_name)
VALUES (?, ?, ?, ?);
`
	findUserByIDQuery = `
SELECT * FROM users WHERE id = ?;
`
	findUserByUsernameOrEmailQuery = `
SELECT * FROM users WHERE username = ? OR email = ? LIMIT 1;
`
	deleteUserQuery = `
DELETE FROM users WHERE id = ?;
`
)

type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID           uint64         `db:"id"`
	Username     string         `db:"username"`
	Email        sql.NullString `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     sql.NullString `db:"full_name"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Insert(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	result, err := r.db.ExecContext(ctx, insertUserQuery,
		input.Username,
		input.Email,
		input.PasswordHash,
		input.FullName,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return domain.User{}, domain.ErrUserConflict
		}
		return domain.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}

	return r.FindByID(ctx, uint64(id))
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, findUserByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return mapUserRowToDomainUser(row), nil
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, findUserByUsernameOrEmailQuery, usernameOrEmail, usernameOrEmail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return mapUserRowToDomainUser(row), nil
}

// Delete removes the user row; the tasks foreign key is declared
// ON DELETE CASCADE so every task owned by the user goes with it.
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func mapUserRowToDomainUser(row userRow) domain.User {
	user := domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}

	if row.Email.Valid {
		value := row.Email.String
		user.Email = &value
	}

	if row.FullName.Valid {
		value := row.FullName.String
		user.FullName = &value
	}

	if row.UpdatedAt.Valid {
		value := row.UpdatedAt.Time
		user.UpdatedAt = &value
	}

	return user
}
