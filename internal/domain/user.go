package domain

import "time"

// User is the domain model for registered accounts. Identity is immutable
// after registration; there is no update or delete path.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
