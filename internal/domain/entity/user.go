package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account that owns readings and watch samples.
// The email doubles as the watch sync API key: the iOS companion app sends it
// as a bearer credential when it has no browser session. That is a known
// weakness kept for client compatibility, not a pattern to extend.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // Login identifier and watch sync API key.
	Name         string    // Display name.
	PasswordHash string    // Salted bcrypt hash, never serialized.
	CreatedAt    time.Time // Timestamp of account creation.
}
