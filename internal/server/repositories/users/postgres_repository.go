package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/roles"
)

const uniqueViolation = "23505"

const selectColumns = `id, email, password_hash, first_name, last_name, company_name, tenant_id,
		        role, enabled, locked, failed_attempts, created_at, updated_at, last_login_at`

// PostgresRepository implements Repository over dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, password_hash, first_name, last_name, company_name, tenant_id, role, enabled, locked)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, nullString(user.CompanyName),
		user.TenantID, string(user.Role), user.Enabled, user.Locked,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + selectColumns + `
		 FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + selectColumns + `
		 FROM users
		 WHERE id = $1
		 FOR UPDATE
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string, tenant uuid.NullUUID) (*models.User, error) {
	query := `SELECT ` + selectColumns + `
		 FROM users
		 WHERE email = $1 AND tenant_id IS NOT DISTINCT FROM $2
		 `
	return r.getOne(ctx, query, email, tenant)
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string, tenant uuid.NullUUID) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM users WHERE email = $1 AND tenant_id IS NOT DISTINCT FROM $2
		 )
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email, tenant).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET password_hash = $2, first_name = $3, last_name = $4, company_name = $5,
		     role = $6, enabled = $7, locked = $8, failed_attempts = $9, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.PasswordHash, user.FirstName, user.LastName, nullString(user.CompanyName),
		string(user.Role), user.Enabled, user.Locked, user.FailedAttempts,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresRepository) RecordLoginSuccess(ctx context.Context, id string, at time.Time) error {
	query :=
		`UPDATE users
		 SET failed_attempts = 0, last_login_at = $2, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresRepository) RecordLoginFailure(ctx context.Context, id string, maxAttempts int) (int, bool, error) {
	query :=
		`UPDATE users
		 SET failed_attempts = failed_attempts + 1,
		     locked = locked OR failed_attempts + 1 >= $2,
		     updated_at = now()
		 WHERE id = $1
		 RETURNING failed_attempts, locked
		 `

	var attempts int
	var locked bool
	if err := r.db.QueryRowContext(ctx, query, id, maxAttempts).Scan(&attempts, &locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, common.ErrorNotFound
		}
		return 0, false, fmt.Errorf("db error: %w", err)
	}
	return attempts, locked, nil
}

func (r *PostgresRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	query :=
		`UPDATE users
		 SET locked = $2,
		     failed_attempts = CASE WHEN $2 THEN failed_attempts ELSE 0 END,
		     updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, locked)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var (
		u         models.User
		role      string
		company   sql.NullString
		lastLogin sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &company, &u.TenantID,
		&role, &u.Enabled, &u.Locked, &u.FailedAttempts, &u.CreatedAt, &u.UpdatedAt, &lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	u.Role = roles.Role(role)
	if company.Valid {
		u.CompanyName = &company.String
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return &u, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
