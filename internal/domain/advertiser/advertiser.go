package advertiser

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Advertiser owns advertising campaigns. Email is optional; an
// advertiser without one simply receives no lifecycle notifications.
type Advertiser struct {
	ID           uuid.UUID
	UserID       uuid.NullUUID
	BusinessName string
	NationalID   string
	Email        sql.NullString
	Phone        sql.NullString
	CreatedAt    time.Time
}
