// Package repository defines the data access layer: one repo struct per
// table with hand-written SQL, plus sentinel error values reused across
// repositories. The sentinels let handlers map failure scenarios to HTTP
// statuses without inspecting driver errors: not-found variants become
// 404 and the duplicate variants become 409.
package repository

import (
	"errors"
	"strings"
)

// ErrUserNotFound is returned when no user matches the given id or username.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists signals a registration conflict on the unique username.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists signals a conflict on the unique email column.
var ErrEmailExists = errors.New("email already exists")

// ErrMovieNotFound is returned when a referenced movie does not exist.
var ErrMovieNotFound = errors.New("movie not found")

// ErrReviewNotFound is returned when a review is absent, or when it exists
// but under a different movie than the caller named. Both cases look
// identical to the client so review ids cannot be probed across movies.
var ErrReviewNotFound = errors.New("review not found")

// ErrDuplicateReview enforces the one-review-per-user-per-movie rule.
var ErrDuplicateReview = errors.New("review already exists")

// ErrFavoriteNotFound is returned when removing a movie that is not in the
// caller's favorites.
var ErrFavoriteNotFound = errors.New("favorite not found")

// ErrDuplicateFavorite is returned when favoriting a movie twice.
var ErrDuplicateFavorite = errors.New("favorite already exists")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062). Unique indexes backstop the pre-insert existence checks,
// so two racing inserts still surface as a conflict rather than a 500.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
