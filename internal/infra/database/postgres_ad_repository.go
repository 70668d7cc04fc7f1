package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/unihaven/backend/internal/domain/ad"

	"github.com/google/uuid"
)

// Custom errors
var ErrAdNotFound = fmt.Errorf("ad not found")

type PostgresAdRepository struct {
	db *sql.DB
}

func NewPostgresAdRepository(db *sql.DB) *PostgresAdRepository {
	return &PostgresAdRepository{db: db}
}

const adSelectCols = `id, advertiser_id, title, description, campus, media_url, start_date, end_date, active, last_reminder_sent_at, created_at, updated_at`

func scanAd(scan func(...any) error) (*ad.Ad, error) {
	a := &ad.Ad{}
	err := scan(&a.ID, &a.AdvertiserID, &a.Title, &a.Description, &a.Campus, &a.MediaURL,
		&a.StartDate, &a.EndDate, &a.Active, &a.LastReminderSentAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresAdRepository) Create(ctx context.Context, a *ad.Ad) error {
	query := `INSERT INTO ads (advertiser_id, title, description, campus, media_url, start_date, end_date, active)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
               RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		a.AdvertiserID, a.Title, a.Description, a.Campus, a.MediaURL, a.StartDate, a.EndDate, a.Active,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating ad: %w", err)
	}
	return nil
}

func (r *PostgresAdRepository) GetByID(ctx context.Context, id uuid.UUID) (*ad.Ad, error) {
	query := `SELECT ` + adSelectCols + ` FROM ads WHERE id = $1`
	a, err := scanAd(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("error getting ad by ID: %w", err)
	}
	return a, nil
}

func (r *PostgresAdRepository) ListByAdvertiser(ctx context.Context, advertiserID uuid.UUID) ([]*ad.Ad, error) {
	query := `SELECT ` + adSelectCols + ` FROM ads WHERE advertiser_id = $1 ORDER BY created_at DESC`
	return r.queryAds(ctx, query, advertiserID)
}

func (r *PostgresAdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting ad: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting ad: %w", err)
	}
	if affected == 0 {
		return ErrAdNotFound
	}
	return nil
}

func (r *PostgresAdRepository) ListActiveEndingBy(ctx context.Context, cutoff time.Time) ([]*ad.Ad, error) {
	query := `SELECT ` + adSelectCols + ` FROM ads
               WHERE active = TRUE AND end_date <= $1
               ORDER BY end_date`
	return r.queryAds(ctx, query, cutoff)
}

// MarkExpired deactivates the ad only while the expiry predicate still
// holds, so concurrent passes cannot expire the same ad twice.
func (r *PostgresAdRepository) MarkExpired(ctx context.Context, id uuid.UUID, asOf time.Time) (*ad.Ad, error) {
	query := `UPDATE ads
               SET active = FALSE, updated_at = NOW()
               WHERE id = $1 AND active = TRUE AND end_date <= $2
               RETURNING ` + adSelectCols
	a, err := scanAd(r.db.QueryRowContext(ctx, query, id, asOf).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("error marking ad expired: %w", err)
	}
	return a, nil
}

// MarkReminderSent stamps last_reminder_sent_at, guarded by the same
// throttle predicate the reminder decision used.
func (r *PostgresAdRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, asOf time.Time, throttle time.Duration) (*ad.Ad, error) {
	query := `UPDATE ads
               SET last_reminder_sent_at = $2, updated_at = NOW()
               WHERE id = $1 AND active = TRUE AND end_date > $2
                 AND (last_reminder_sent_at IS NULL OR last_reminder_sent_at <= $3)
               RETURNING ` + adSelectCols
	a, err := scanAd(r.db.QueryRowContext(ctx, query, id, asOf, asOf.Add(-throttle)).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("error marking reminder sent: %w", err)
	}
	return a, nil
}

func (r *PostgresAdRepository) queryAds(ctx context.Context, query string, args ...any) ([]*ad.Ad, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing ads: %w", err)
	}
	defer rows.Close()

	ads := make([]*ad.Ad, 0)
	for rows.Next() {
		a, err := scanAd(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error scanning ad: %w", err)
		}
		ads = append(ads, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ads: %w", err)
	}
	return ads, nil
}
