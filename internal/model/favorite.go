package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteMovie mirrors the `favorite_movies` join table. The composite
// primary key (user_id, movie_id) makes membership idempotent: a movie is
// either favorited by a user or it is not. Only the row's existence
// matters, not its content.
type FavoriteMovie struct {
	UserID    uuid.UUID // favorite_movies.user_id
	MovieID   uuid.UUID // favorite_movies.movie_id
	CreatedAt time.Time // favorite_movies.created_at
}
