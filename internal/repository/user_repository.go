package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kinoteka/movie-catalog/internal/model"
)

const userColumns = "id, username, email, name, password_hash, birth_date, gender, avatar_link, created_at, updated_at"

// UserRepo persists user identity records in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a fully populated user. Duplicate username/email rows are
// rejected by unique indexes; the violated index name decides which
// sentinel comes back. The 1062 message also embeds the duplicated value,
// so matching anything looser than the index name would misclassify an
// email that happens to contain "username".
func (r *UserRepo) Create(ctx context.Context, u model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, username, email, name, password_hash, birth_date, gender, avatar_link) VALUES (?,?,?,?,?,?,?,?)",
		u.ID, u.Username, u.Email, u.Name, u.PasswordHash, u.BirthDate, u.Gender, u.AvatarLink)
	if isDuplicate(err) {
		if strings.Contains(err.Error(), "uq_users_username") {
			return ErrUsernameExists
		}
		return ErrEmailExists
	}
	return err
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username)
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.Name, &u.PasswordHash,
		&u.BirthDate, &u.Gender, &u.AvatarLink, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdateProfile overwrites the mutable profile fields of a user. The
// username is immutable after registration. A duplicate email surfaces as
// ErrEmailExists via the unique index.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, email, name string, birthDate *time.Time, gender model.Gender, avatarLink *string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, name=?, birth_date=?, gender=?, avatar_link=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		email, name, birthDate, gender, avatarLink, id)
	if isDuplicate(err) {
		return ErrEmailExists
	}
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero affected rows may also mean a no-op update of an existing
		// user, so confirm absence before reporting not-found.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
	}
	return nil
}
