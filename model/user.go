package model

import (
	"time"

	"github.com/muhammadheryan/telecom-distribution/constant"
)

// UserEntity represents the user table entity
type UserEntity struct {
	ID           uint64        `db:"id" json:"id"`
	Name         string        `db:"name" json:"name"`
	Email        string        `db:"email" json:"email"`
	Phone        string        `db:"phone" json:"phone"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Role         constant.Role `db:"role" json:"role"`
	ParentID     *uint64       `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time    `db:"updated_at" json:"updated_at,omitempty"`
}

// Principal is the authenticated identity for the lifetime of a session.
type Principal struct {
	ID   uint64        `json:"id"`
	Name string        `json:"name"`
	Role constant.Role `json:"role"`
}

func (u *UserEntity) Principal() Principal {
	return Principal{ID: u.ID, Name: u.Name, Role: u.Role}
}

// UserFilter for querying users
type UserFilter struct {
	ID    uint64
	Email string
	Phone string
}

// UserListFilter for listing users by role, optionally under one distributor
type UserListFilter struct {
	Role     constant.Role
	ParentID *uint64
}

// RegisterRequest for user registration
type RegisterRequest struct {
	Name     string        `json:"name" validate:"required"`
	Email    string        `json:"email" validate:"required,email"`
	Phone    string        `json:"phone" validate:"required"`
	Password string        `json:"password" validate:"required,min=6"`
	Role     constant.Role `json:"role" validate:"required,oneof=distributor agent retailer"`
}

// CreateUserRequest is the distributor's provisioning form
type CreateUserRequest struct {
	Name     string        `json:"name" validate:"required"`
	Email    string        `json:"email" validate:"required,email"`
	Phone    string        `json:"phone" validate:"required"`
	Password string        `json:"password" validate:"required,min=6"`
	Role     constant.Role `json:"role" validate:"required,oneof=agent retailer"`
}

// LoginRequest accepts an identifier (email or phone) or the plain email field the dashboard sends
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required_without=Email"`
	Email      string `json:"email" validate:"required_without=Identifier"`
	Password   string `json:"password" validate:"required"`
}

// LoginID returns whichever identifier the caller supplied.
func (r *LoginRequest) LoginID() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Email
}

type UserResponse struct {
	ID    uint64        `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Phone string        `json:"phone,omitempty"`
	Role  constant.Role `json:"role"`
}

func NewUserResponse(u *UserEntity) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// Preferences are the dashboard's theme and language choices.
type Preferences struct {
	Theme    string `json:"theme" validate:"omitempty,oneof=light dark"`
	Language string `json:"language" validate:"omitempty,oneof=en hi"`
}

const (
	DefaultTheme    = "light"
	DefaultLanguage = "en"
)
