package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kinoteka/movie-catalog/internal/model"
)

// FavoriteRepo manages the 'favorite_movies' marker rows. The composite
// primary key (user_id, movie_id) keeps membership idempotent at the
// storage level.
type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// ListMovies returns the full movie rows a user has favorited, oldest
// favorite first.
func (r *FavoriteRepo) ListMovies(ctx context.Context, userID uuid.UUID) ([]model.Movie, error) {
	query := `SELECT m.id, m.name, m.poster, m.year, m.country, m.time, m.tagline, m.description, m.director, m.budget, m.fees, m.age_limit, m.created_at
		FROM favorite_movies f
		JOIN movies m ON m.id = f.movie_id
		WHERE f.user_id=?
		ORDER BY f.created_at, m.id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovies(rows)
}

// Add inserts the marker row. The primary key turns a racing double-add
// into ErrDuplicateFavorite instead of a second row.
func (r *FavoriteRepo) Add(ctx context.Context, userID, movieID uuid.UUID) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO favorite_movies (user_id, movie_id) VALUES (?,?)",
		userID, movieID)
	if isDuplicate(err) {
		return ErrDuplicateFavorite
	}
	return err
}

// Remove deletes the marker row. Removing a movie that was never
// favorited is reported as ErrFavoriteNotFound.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, movieID uuid.UUID) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM favorite_movies WHERE user_id=? AND movie_id=?",
		userID, movieID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// Exists reports whether the user has favorited the movie.
func (r *FavoriteRepo) Exists(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM favorite_movies WHERE user_id=? AND movie_id=? LIMIT 1",
		userID, movieID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
