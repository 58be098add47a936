package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/dbx"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/models"
)

const emailUniqueConstraint = "users_email_key"

const selectUser = `SELECT u.id, u.email, u.first_name, u.middle_name, u.last_name,
		 u.second_last_name, u.phone, u.password_hash, u.role_id, r.name,
		 u.code, u.code_expires_at, u.status, u.created_at, u.updated_at
		 FROM users u
		 JOIN roles r ON r.id = u.role_id
		 `

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, email, first_name, middle_name, last_name, second_last_name,
		 phone, password_hash, role_id, code, code_expires_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.FirstName, nullString(user.MiddleName), user.LastName,
		nullString(user.SecondLastName), nullString(user.Phone), user.PasswordHash, user.RoleID,
		nullString(user.Login.Code), nullTime(user.Login.CodeExpiresAt), string(user.Login.Status),
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err, emailUniqueConstraint) {
			return nil, fmt.Errorf("create user: %w", common.ErrAlreadyRegistered)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUser+`WHERE u.id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUser+`WHERE u.email = $1`, email)
}

func (r *PostgresRepository) GetByEmailForUpdate(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUser+`WHERE u.email = $1
		 FOR UPDATE OF u`, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var (
		u                               models.User
		middle, secondLast, phone, code sql.NullString
		codeExpiresAt                   sql.NullTime
		status                          string
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.FirstName, &middle, &u.LastName,
		&secondLast, &phone, &u.PasswordHash, &u.RoleID, &u.RoleName,
		&code, &codeExpiresAt, &status, &u.CreatedAt, &u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	u.MiddleName = middle.String
	u.SecondLastName = secondLast.String
	u.Phone = phone.String
	u.Login = models.Login{
		Code:          code.String,
		CodeExpiresAt: codeExpiresAt.Time,
		Status:        models.Status(status),
	}

	return &u, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return expectOneRow(res, err)
}

func (r *PostgresRepository) UpdateVerificationCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	query :=
		`UPDATE users SET code = $2, code_expires_at = $3, updated_at = now()
		 WHERE id = $1 AND status = 'PENDING'
		 `

	res, err := r.db.ExecContext(ctx, query, id, code, expiresAt)
	return expectOneRow(res, err)
}

func (r *PostgresRepository) Activate(ctx context.Context, id string) (bool, error) {
	query :=
		`UPDATE users SET status = 'ACTIVE', code = NULL, code_expires_at = NULL, updated_at = now()
		 WHERE id = $1 AND status = 'PENDING'
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	return affected(res, err)
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	return expectOneRow(res, err)
}

func (r *PostgresRepository) ReplacePasswordHash(ctx context.Context, id, from, to string) (bool, error) {
	query :=
		`UPDATE users SET password_hash = $3, updated_at = now()
		 WHERE id = $1 AND password_hash = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, from, to)
	return affected(res, err)
}

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func expectOneRow(res sql.Result, err error) error {
	ok, err := affected(res, err)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
