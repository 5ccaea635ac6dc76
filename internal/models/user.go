package models

import "time"

// User is a row of the users table.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the writable fields before they reach the store.
func (u *User) Validate() error {
	v := validator{entity: "user"}
	v.required("username", u.Username)
	v.maxLen("username", u.Username, 50)
	v.required("email", u.Email)
	v.maxLen("email", u.Email, 100)
	v.required("password_hash", u.PasswordHash)
	v.maxLen("password_hash", u.PasswordHash, 255)
	v.maxLen("first_name", u.FirstName, 50)
	v.maxLen("last_name", u.LastName, 50)
	v.maxLen("phone", u.Phone, 20)
	return v.err
}
