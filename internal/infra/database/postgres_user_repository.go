package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/unihaven/backend/internal/domain/user"

	"github.com/google/uuid"
)

// Custom errors
var ErrUserNotFound = fmt.Errorf("user not found")

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userSelectCols = `id, username, full_name, email, is_suspended, suspended_until, created_at, updated_at`

func scanUser(scan func(...any) error) (*user.User, error) {
	u := &user.User{}
	err := scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.IsSuspended, &u.SuspendedUntil, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + userSelectCols + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) Suspend(ctx context.Context, id uuid.UUID, until sql.NullTime) (*user.User, error) {
	query := `UPDATE users
               SET is_suspended = TRUE, suspended_until = $2, updated_at = NOW()
               WHERE id = $1
               RETURNING ` + userSelectCols
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, until).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error suspending user: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) Unsuspend(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `UPDATE users
               SET is_suspended = FALSE, suspended_until = NULL, updated_at = NOW()
               WHERE id = $1
               RETURNING ` + userSelectCols
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error unsuspending user: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) ListSuspensionsDue(ctx context.Context, asOf time.Time) ([]*user.User, error) {
	query := `SELECT ` + userSelectCols + ` FROM users
               WHERE is_suspended = TRUE
                 AND suspended_until IS NOT NULL
                 AND suspended_until <= $1
               ORDER BY suspended_until`

	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error listing due suspensions: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error scanning due suspension: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due suspensions: %w", err)
	}
	return users, nil
}

// LiftSuspension re-checks the due predicate in the WHERE clause, so a
// user deleted or already unsuspended since the read yields no rows.
func (r *PostgresUserRepository) LiftSuspension(ctx context.Context, id uuid.UUID, asOf time.Time) (*user.User, error) {
	query := `UPDATE users
               SET is_suspended = FALSE, suspended_until = NULL, updated_at = NOW()
               WHERE id = $1
                 AND is_suspended = TRUE
                 AND suspended_until IS NOT NULL
                 AND suspended_until <= $2
               RETURNING ` + userSelectCols
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, asOf).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error lifting suspension: %w", err)
	}
	return u, nil
}
