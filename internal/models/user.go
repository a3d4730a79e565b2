package models

// User mirrors the users table row shape.
type User struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	AuditFields
}
