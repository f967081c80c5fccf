package domain

import "time"

// User is an account that can upload CVs and query matches.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	// Email is the login identifier, unique across users.
	Email string

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string

	// FullName is the display name.
	FullName string

	// CreatedAt is when the account was registered.
	CreatedAt time.Time
}
