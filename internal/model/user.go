package model

import (
	"time"

	"github.com/google/uuid"
)

// Gender is stored as an integer column, matching the wire format used by
// clients (0 = male, 1 = female).
type Gender int

const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column. Handlers define separate
// response types with the appropriate JSON tags; these structs are used
// internally by the repository layer.
//
// Fields:
//  ID           – primary key (UUID, CHAR(36) in MySQL).
//  Username     – unique login name, immutable after registration.
//  Email        – unique email address.
//  Name         – display name.
//  PasswordHash – bcrypt hashed password.
//  BirthDate    – optional date of birth (nullable).
//  Gender       – integer gender enum.
//  AvatarLink   – optional URL of the user's avatar (nullable).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uuid.UUID  // users.id
	Username     string     // users.username
	Email        string     // users.email
	Name         string     // users.name
	PasswordHash string     // users.password_hash
	BirthDate    *time.Time // users.birth_date (nullable)
	Gender       Gender     // users.gender
	AvatarLink   *string    // users.avatar_link (nullable)
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each token
// belongs to a user. The plain token is never stored; only its SHA-256
// hash. Rows are deleted wholesale on logout, which revokes every session
// the user holds.
//
// Fields:
//  ID        – primary key.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uuid.UUID // refresh_tokens.id
	UserID    uuid.UUID // refresh_tokens.user_id
	TokenHash string    // refresh_tokens.token_hash
	ExpiresAt time.Time // refresh_tokens.expires_at
	CreatedAt time.Time // refresh_tokens.created_at
}
