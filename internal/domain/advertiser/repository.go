package advertiser

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the operations for persisting and retrieving advertisers.
type Repository interface {
	Create(ctx context.Context, a *Advertiser) error
	GetByID(ctx context.Context, id uuid.UUID) (*Advertiser, error)
	List(ctx context.Context) ([]*Advertiser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
