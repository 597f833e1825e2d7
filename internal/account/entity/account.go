package entity

import "time"

// User is the account profile as stored. The password hash is never part of
// this struct so it cannot leak into responses or logs.
type User struct {
	ID              int64
	Email           string
	FullName        string
	CompanyName     string
	Age             int32
	DateOfBirth     time.Time
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserCredential carries the minimum needed to verify a password.
type UserCredential struct {
	ID       int64
	Email    string
	FullName string
	Password string
}

// NewUser is the data required to create an account.
type NewUser struct {
	ID              int64
	Email           string
	FullName        string
	CompanyName     string
	Age             int32
	DateOfBirth     time.Time
	ProfileImageURL string
}

// PatchUser is a partial profile update. Nil fields are left unchanged.
type PatchUser struct {
	ID          int64
	FullName    *string
	CompanyName *string
	Age         *int32
	DateOfBirth *time.Time
}
