package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unihaven/backend/internal/domain/advertiser"

	"github.com/google/uuid"
)

// Custom errors
var ErrAdvertiserNotFound = fmt.Errorf("advertiser not found")

type PostgresAdvertiserRepository struct {
	db *sql.DB
}

func NewPostgresAdvertiserRepository(db *sql.DB) *PostgresAdvertiserRepository {
	return &PostgresAdvertiserRepository{db: db}
}

const advertiserSelectCols = `id, user_id, business_name, national_id, email, phone, created_at`

func scanAdvertiser(scan func(...any) error) (*advertiser.Advertiser, error) {
	a := &advertiser.Advertiser{}
	err := scan(&a.ID, &a.UserID, &a.BusinessName, &a.NationalID, &a.Email, &a.Phone, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresAdvertiserRepository) Create(ctx context.Context, a *advertiser.Advertiser) error {
	query := `INSERT INTO advertisers (user_id, business_name, national_id, email, phone)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, a.UserID, a.BusinessName, a.NationalID, a.Email, a.Phone).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating advertiser: %w", err)
	}
	return nil
}

func (r *PostgresAdvertiserRepository) GetByID(ctx context.Context, id uuid.UUID) (*advertiser.Advertiser, error) {
	query := `SELECT ` + advertiserSelectCols + ` FROM advertisers WHERE id = $1`
	a, err := scanAdvertiser(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdvertiserNotFound
		}
		return nil, fmt.Errorf("error getting advertiser by ID: %w", err)
	}
	return a, nil
}

func (r *PostgresAdvertiserRepository) List(ctx context.Context) ([]*advertiser.Advertiser, error) {
	query := `SELECT ` + advertiserSelectCols + ` FROM advertisers ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing advertisers: %w", err)
	}
	defer rows.Close()

	advertisers := make([]*advertiser.Advertiser, 0)
	for rows.Next() {
		a, err := scanAdvertiser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error scanning advertiser: %w", err)
		}
		advertisers = append(advertisers, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating advertisers: %w", err)
	}
	return advertisers, nil
}

func (r *PostgresAdvertiserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM advertisers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting advertiser: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting advertiser: %w", err)
	}
	if affected == 0 {
		return ErrAdvertiserNotFound
	}
	return nil
}
