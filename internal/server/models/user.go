// Package models holds the persisted shapes of the account service.
package models

import "time"

// Status is the lifecycle state of an account's login.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusActive  Status = "ACTIVE"
)

// Login is the verification sub-record of a user. Code and CodeExpiresAt are
// only meaningful while Status is StatusPending; activation clears both.
type Login struct {
	Code          string
	CodeExpiresAt time.Time
	Status        Status
}

// HasCode reports whether a verification code is outstanding.
func (l Login) HasCode() bool {
	return l.Code != ""
}

// Expired reports whether the code has expired at now. A code is still valid
// at the exact expiry instant.
func (l Login) Expired(now time.Time) bool {
	return now.After(l.CodeExpiresAt)
}

// User is an account. Optional name parts and Phone are empty when absent.
type User struct {
	ID             string
	Email          string
	FirstName      string
	MiddleName     string
	LastName       string
	SecondLastName string
	Phone          string
	PasswordHash   string
	RoleID         int64
	RoleName       string
	Login          Login
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive reports whether the account has been verified.
func (u *User) IsActive() bool {
	return u.Login.Status == StatusActive
}

// DisplayName is used to greet the user in notifications.
func (u *User) DisplayName() string {
	return u.FirstName
}
