package ad

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Ad represents an advertising campaign.
type Ad struct {
	ID                 uuid.UUID
	AdvertiserID       uuid.UUID
	Title              string
	Description        sql.NullString
	Campus             sql.NullString
	MediaURL           sql.NullString
	StartDate          time.Time
	EndDate            time.Time
	Active             bool
	LastReminderSentAt sql.NullTime
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
