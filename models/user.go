// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the authorization level of a [User].
type Role string

const (
	// RoleUser is the default role for every registered account.
	RoleUser Role = "user"
	// RoleAdmin grants access to the /admin API.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is an opaque identifier generated at creation (UUIDv7 string).
	ID string `json:"id"`

	// Email is the unique login of the user, compared case-sensitively.
	Email string `json:"email"`

	// HashedPassword is the bcrypt hash of the user's password.
	// It is never serialised.
	HashedPassword string `json:"-"`

	// FullName is the optional display name.
	FullName *string `json:"full_name"`

	// Role controls access to administrative operations.
	Role Role `json:"role"`

	// CreatedAt is the moment the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserWithCount is a user row enriched with the number of predictions it owns.
type UserWithCount struct {
	User
	PredictionsCount int64 `json:"predictions_count"`
}

// UserPatch describes a partial update of a user. Nil fields are left untouched.
type UserPatch struct {
	ID             string
	Email          *string
	HashedPassword *string
	FullName       *string
	Role           *Role
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.HashedPassword == nil && p.FullName == nil && p.Role == nil
}
