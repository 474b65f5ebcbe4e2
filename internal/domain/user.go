package domain

// UserID identifies a registered user. IDs start at 1.
type UserID int64

// User is the domain entity for a user account.
// Credential is compared verbatim; it is never hashed or normalized.
type User struct {
	ID         UserID
	Name       string
	Credential string
}
