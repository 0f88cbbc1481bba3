package model

import (
	"time"

	"github.com/google/uuid"
)

// Review mirrors the `reviews` table. A user may review a movie at most
// once; the pair (user_id, movie_id) carries a unique index. Reviews are
// cascade-deleted with either the movie or the author.
//
// Fields:
//  ID          – primary key.
//  MovieID     – reviewed movie.
//  UserID      – authoring user.
//  Rating      – integer score, 0 to 10 inclusive.
//  ReviewText  – non-empty review body.
//  IsAnonymous – when true the author is hidden from all responses.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last edit.
type Review struct {
	ID          uuid.UUID // reviews.id
	MovieID     uuid.UUID // reviews.movie_id
	UserID      uuid.UUID // reviews.user_id
	Rating      int       // reviews.rating
	ReviewText  string    // reviews.review_text
	IsAnonymous bool      // reviews.is_anonymous
	CreatedAt   time.Time // reviews.created_at
	UpdatedAt   time.Time // reviews.updated_at
}
