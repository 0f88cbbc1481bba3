package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/kinoteka/movie-catalog/internal/model"
)

// GenreRepo reads and seeds the 'genres' table.
type GenreRepo struct{ DB *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{DB: db} }

// ByMovieIDs batch-fetches the genres of many movies in one query,
// grouped by movie id. A single IN query replaces per-movie lookups so a
// page of movies costs a constant number of round trips.
func (r *GenreRepo) ByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]model.Genre, error) {
	out := make(map[uuid.UUID][]model.Genre, len(movieIDs))
	if len(movieIDs) == 0 {
		return out, nil
	}
	query := `SELECT mg.movie_id, g.id, g.name
		FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id IN (` + placeholders(len(movieIDs)) + `)
		ORDER BY g.name`
	rows, err := r.DB.QueryContext(ctx, query, idArgs(movieIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var movieID uuid.UUID
		var g model.Genre
		if err := rows.Scan(&movieID, &g.ID, &g.Name); err != nil {
			return nil, err
		}
		out[movieID] = append(out[movieID], g)
	}
	return out, rows.Err()
}

// GetOrCreate returns the genre with the given name, creating it when
// absent. Used by the seeder; genre names are unique.
func (r *GenreRepo) GetOrCreate(ctx context.Context, name string) (model.Genre, error) {
	var g model.Genre
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM genres WHERE name=? LIMIT 1", name).Scan(&g.ID, &g.Name)
	if err == nil {
		return g, nil
	}
	if err != sql.ErrNoRows {
		return model.Genre{}, err
	}
	g = model.Genre{ID: uuid.New(), Name: name}
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO genres (id, name) VALUES (?,?)", g.ID, g.Name); err != nil {
		return model.Genre{}, err
	}
	return g, nil
}

// placeholders returns "?,?,...,?" with n placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []uuid.UUID) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
