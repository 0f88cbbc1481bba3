package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kinoteka/movie-catalog/internal/model"
)

const movieColumns = "id, name, poster, year, country, time, tagline, description, director, budget, fees, age_limit, created_at"

// MovieRepo reads the movie catalog. Movies have no HTTP write surface;
// Insert and AttachGenre exist for the seeder.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

// Count returns the total number of movies in the catalog.
func (r *MovieRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&n)
	return n, err
}

// ListPage returns one page of movies. Rows are ordered by insertion
// (created_at, then id as a tiebreaker) so that pages are stable across
// requests absent writes.
func (r *MovieRepo) ListPage(ctx context.Context, offset, limit int) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies ORDER BY created_at, id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovies(rows)
}

// GetByID fetches a single movie.
func (r *MovieRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Movie, error) {
	var m model.Movie
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id=? LIMIT 1", id).Scan(
		&m.ID, &m.Name, &m.Poster, &m.Year, &m.Country, &m.Time,
		&m.Tagline, &m.Description, &m.Director, &m.Budget, &m.Fees,
		&m.AgeLimit, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Exists reports whether a movie with the given id is present.
func (r *MovieRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM movies WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// Insert adds a movie row. Used by the seeder.
func (r *MovieRepo) Insert(ctx context.Context, m model.Movie) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO movies (id, name, poster, year, country, time, tagline, description, director, budget, fees, age_limit) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		m.ID, m.Name, m.Poster, m.Year, m.Country, m.Time,
		m.Tagline, m.Description, m.Director, m.Budget, m.Fees, m.AgeLimit)
	return err
}

// AttachGenre links a movie to a genre. Re-linking an existing pair is a
// no-op rather than an error.
func (r *MovieRepo) AttachGenre(ctx context.Context, movieID, genreID uuid.UUID) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO movie_genres (movie_id, genre_id) VALUES (?,?)",
		movieID, genreID)
	if isDuplicate(err) {
		return nil
	}
	return err
}

func scanMovies(rows *sql.Rows) ([]model.Movie, error) {
	out := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Poster, &m.Year, &m.Country, &m.Time,
			&m.Tagline, &m.Description, &m.Director, &m.Budget, &m.Fees,
			&m.AgeLimit, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
