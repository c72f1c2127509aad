package model

import (
	"errors"
	"time"
)

// User represents a citizen account in the system.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	CPF            *string   `db:"cpf" json:"cpf,omitempty"`
	PhoneNumber    *string   `db:"phone_number" json:"phone_number,omitempty"`
	Subtitle       *string   `db:"subtitle" json:"subtitle"`
	Verified       bool      `db:"verified" json:"verified"`
	Avatar         *string   `db:"avatar" json:"avatar"`
	Role           string    `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is the public author representation joined into posts and comments.
type UserSummary struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Subtitle *string `db:"subtitle" json:"subtitle"`
	Verified bool    `db:"verified" json:"verified"`
	Avatar   *string `db:"avatar" json:"avatar"`
}

// RegisterRequest represents the data needed to register a new user.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	CPF      *string `json:"cpf,omitempty"`
	Phone    *string `json:"phone_number,omitempty"`
}

// LoginRequest represents the data needed to log in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PatchUserRequest carries the profile fields an owner may change.
// Nil fields are left untouched.
type PatchUserRequest struct {
	Name     *string `json:"name"`
	Subtitle *string `json:"subtitle"`
	Avatar   *string `json:"avatar"`
	Phone    *string `json:"phone_number"`
}

// User roles
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
)

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when attempting to register a taken email
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNameRequired is returned when registering without a name
	ErrNameRequired = errors.New("name is required")

	// ErrEmailRequired is returned when registering without an email
	ErrEmailRequired = errors.New("email is required")

	// ErrPasswordRequired is returned when registering without a password
	ErrPasswordRequired = errors.New("password is required")
)
