package models

// Role is an authorization group. Every user belongs to exactly one.
type Role struct {
	ID   int64
	Name string
}
