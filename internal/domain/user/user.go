package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User carries the account fields the reconciler and the admin surface
// work with. The wider profile (bio, avatar, verification badge, ...)
// belongs to the social platform and is not loaded here.
type User struct {
	ID             uuid.UUID
	Username       sql.NullString
	FullName       string
	Email          string
	IsSuspended    bool
	SuspendedUntil sql.NullTime // NULL while suspended means an indefinite suspension
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName returns the name used to address the user in notifications.
func (u *User) DisplayName() string {
	if u.Username.Valid && u.Username.String != "" {
		return u.Username.String
	}
	return u.FullName
}
