package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kinoteka/movie-catalog/internal/model"
)

// ReviewRepo persists reviews and joins author data for projections.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// ReviewWithAuthor carries a review together with its author's public
// fields. The author columns are always populated from the join; whether
// they may be exposed is decided by the projection layer based on
// IsAnonymous.
type ReviewWithAuthor struct {
	model.Review
	AuthorUsername string
	AuthorAvatar   *string
}

// ByMovieIDs batch-fetches all reviews of many movies with their authors
// joined in, grouped by movie id.
func (r *ReviewRepo) ByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]ReviewWithAuthor, error) {
	out := make(map[uuid.UUID][]ReviewWithAuthor, len(movieIDs))
	if len(movieIDs) == 0 {
		return out, nil
	}
	query := `SELECT r.id, r.movie_id, r.user_id, r.rating, r.review_text, r.is_anonymous, r.created_at, r.updated_at, u.username, u.avatar_link
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id IN (` + placeholders(len(movieIDs)) + `)
		ORDER BY r.created_at, r.id`
	rows, err := r.DB.QueryContext(ctx, query, idArgs(movieIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rv ReviewWithAuthor
		if err := rows.Scan(
			&rv.ID, &rv.MovieID, &rv.UserID, &rv.Rating, &rv.ReviewText,
			&rv.IsAnonymous, &rv.CreatedAt, &rv.UpdatedAt,
			&rv.AuthorUsername, &rv.AuthorAvatar); err != nil {
			return nil, err
		}
		out[rv.MovieID] = append(out[rv.MovieID], rv)
	}
	return out, rows.Err()
}

// GetByID fetches a review by id.
func (r *ReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Review, error) {
	var rv model.Review
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, movie_id, user_id, rating, review_text, is_anonymous, created_at, updated_at FROM reviews WHERE id=? LIMIT 1",
		id).Scan(&rv.ID, &rv.MovieID, &rv.UserID, &rv.Rating, &rv.ReviewText,
		&rv.IsAnonymous, &rv.CreatedAt, &rv.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Review{}, ErrReviewNotFound
	}
	return rv, err
}

// ExistsForUserAndMovie reports whether the user has already reviewed the
// movie.
func (r *ReviewRepo) ExistsForUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM reviews WHERE user_id=? AND movie_id=? LIMIT 1",
		userID, movieID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// Create inserts a review. The unique (user_id, movie_id) index backstops
// the handler's pre-check, so a racing duplicate insert still comes back
// as ErrDuplicateReview.
func (r *ReviewRepo) Create(ctx context.Context, rv model.Review) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (id, movie_id, user_id, rating, review_text, is_anonymous) VALUES (?,?,?,?,?,?)",
		rv.ID, rv.MovieID, rv.UserID, rv.Rating, rv.ReviewText, rv.IsAnonymous)
	if isDuplicate(err) {
		return ErrDuplicateReview
	}
	return err
}

// Update overwrites rating, text and anonymity of a review and bumps
// updated_at. Ownership is checked by the handler before calling.
func (r *ReviewRepo) Update(ctx context.Context, id uuid.UUID, rating int, text string, isAnonymous bool) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET rating=?, review_text=?, is_anonymous=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		rating, text, isAnonymous, id)
	return err
}

// Delete removes a review row.
func (r *ReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	return err
}
