package handler

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/movie-catalog/internal/repository"
)

func newReviewHandler(db *sql.DB) *ReviewHandler {
	return NewReviewHandler(repository.NewReviewRepo(db), repository.NewMovieRepo(db))
}

var reviewCols = []string{
	"id", "movie_id", "user_id", "rating", "review_text", "is_anonymous",
	"created_at", "updated_at",
}

func reviewRow(id, movieID, userID uuid.UUID) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(reviewCols).
		AddRow(id.String(), movieID.String(), userID.String(), 8, "good", false, now, now)
}

const validReviewBody = `{"reviewText":"good","rating":8,"isAnonymous":false}`

func TestAddReviewValidation(t *testing.T) {
	cases := map[string]struct {
		body string
		msg  string
	}{
		"empty text":     {`{"reviewText":"  ","rating":5}`, "reviewText must not be empty"},
		"missing rating": {`{"reviewText":"good"}`, "rating must be between 0 and 10"},
		"rating too big": {`{"reviewText":"good","rating":11}`, "rating must be between 0 and 10"},
		"negative":       {`{"reviewText":"good","rating":-1}`, "rating must be between 0 and 10"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db, _ := newMockDB(t)
			h := newReviewHandler(db)

			c, rec := newContext(jsonRequest(http.MethodPost, "/api/movie/x/review/add", tc.body))
			c.SetParamNames("movieId")
			c.SetParamValues(uuid.New().String())
			asUser(c, testUser(t))
			require.NoError(t, h.Add(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.msg, errMsg(t, rec))
		})
	}
}

func TestAddReviewMovieMissing(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)
	movieID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM movies WHERE id=?")).
		WithArgs(movieID.String()).WillReturnError(sql.ErrNoRows)

	c, rec := newContext(jsonRequest(http.MethodPost, "/api/movie/x/review/add", validReviewBody))
	c.SetParamNames("movieId")
	c.SetParamValues(movieID.String())
	asUser(c, testUser(t))
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Movie not found", errMsg(t, rec))
}

func TestAddReviewTwiceConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)
	u := testUser(t)
	movieID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM movies WHERE id=?")).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reviews WHERE user_id=? AND movie_id=?")).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	c, rec := newContext(jsonRequest(http.MethodPost, "/api/movie/x/review/add", validReviewBody))
	c.SetParamNames("movieId")
	c.SetParamValues(movieID.String())
	asUser(c, u)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "You have already reviewed this movie", errMsg(t, rec))
}

func TestAddReviewRacingDuplicateStillConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)
	movieID := uuid.New()

	// Pre-check sees no review, but the unique index rejects the insert.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM movies WHERE id=?")).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reviews WHERE user_id=? AND movie_id=?")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews")).
		WillReturnError(mysqlDuplicateErr("reviews.uq_reviews_user_movie"))

	c, rec := newContext(jsonRequest(http.MethodPost, "/api/movie/x/review/add", validReviewBody))
	c.SetParamNames("movieId")
	c.SetParamValues(movieID.String())
	asUser(c, testUser(t))
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "You have already reviewed this movie", errMsg(t, rec))
}

func TestAddReviewSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)
	movieID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM movies WHERE id=?")).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reviews WHERE user_id=? AND movie_id=?")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newContext(jsonRequest(http.MethodPost, "/api/movie/x/review/add", validReviewBody))
	c.SetParamNames("movieId")
	c.SetParamValues(movieID.String())
	asUser(c, testUser(t))
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Review added successfully", okMsg(t, rec))
}

func TestEditReviewNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews WHERE id=?")).
		WillReturnError(sql.ErrNoRows)

	c, rec := newContext(jsonRequest(http.MethodPut, "/api/movie/x/review/y/edit", validReviewBody))
	c.SetParamNames("movieId", "id")
	c.SetParamValues(uuid.New().String(), uuid.New().String())
	asUser(c, testUser(t))
	require.NoError(t, h.Edit(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Review not found", errMsg(t, rec))
}

func TestEditReviewUnderWrongMovie(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)
	u := testUser(t)
	reviewID := uuid.New()

	// The review exists and is even owned by the caller, but it belongs
	// to another movie. It must look absent, not forbidden.
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews WHERE id=?")).
		WillReturnRows(reviewRow(reviewID, uuid.New(), u.ID))

	c, rec := newContext(jsonRequest(http.MethodPut, "/api/movie/x/review/y/edit", validReviewBody))
	c.SetParamNames("movieId", "id")
	c.SetParamValues(uuid.New().String(), reviewID.String())
	asUser(c, u)
	require.NoError(t, h.Edit(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Review not found for this movie", errMsg(t, rec))
}

func TestEditReviewNotOwner(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)
	movieID, reviewID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews WHERE id=?")).
		WillReturnRows(reviewRow(reviewID, movieID, uuid.New()))

	c, rec := newContext(jsonRequest(http.MethodPut, "/api/movie/x/review/y/edit", validReviewBody))
	c.SetParamNames("movieId", "id")
	c.SetParamValues(movieID.String(), reviewID.String())
	asUser(c, testUser(t))
	require.NoError(t, h.Edit(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only edit your own reviews", errMsg(t, rec))
}

func TestEditReviewSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)
	u := testUser(t)
	movieID, reviewID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews WHERE id=?")).
		WillReturnRows(reviewRow(reviewID, movieID, u.ID))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reviews SET rating=?")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newContext(jsonRequest(http.MethodPut, "/api/movie/x/review/y/edit",
		`{"reviewText":"changed my mind","rating":3,"isAnonymous":true}`))
	c.SetParamNames("movieId", "id")
	c.SetParamValues(movieID.String(), reviewID.String())
	asUser(c, u)
	require.NoError(t, h.Edit(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Review updated successfully", okMsg(t, rec))
}

func TestDeleteReviewNotOwner(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)
	movieID, reviewID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews WHERE id=?")).
		WillReturnRows(reviewRow(reviewID, movieID, uuid.New()))

	c, rec := newContext(jsonRequest(http.MethodDelete, "/api/movie/x/review/y/delete", ""))
	c.SetParamNames("movieId", "id")
	c.SetParamValues(movieID.String(), reviewID.String())
	asUser(c, testUser(t))
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only delete your own reviews", errMsg(t, rec))
}

func TestDeleteReviewSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	h := newReviewHandler(db)
	u := testUser(t)
	movieID, reviewID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews WHERE id=?")).
		WillReturnRows(reviewRow(reviewID, movieID, u.ID))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE id=?")).
		WithArgs(reviewID.String()).WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newContext(jsonRequest(http.MethodDelete, "/api/movie/x/review/y/delete", ""))
	c.SetParamNames("movieId", "id")
	c.SetParamValues(movieID.String(), reviewID.String())
	asUser(c, u)
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Review deleted successfully", okMsg(t, rec))
}

func TestReviewInvalidIDs(t *testing.T) {
	db, _ := newMockDB(t)
	h := newReviewHandler(db)

	c, rec := newContext(jsonRequest(http.MethodPut, "/api/movie/x/review/y/edit", validReviewBody))
	c.SetParamNames("movieId", "id")
	c.SetParamValues("not-a-uuid", uuid.New().String())
	asUser(c, testUser(t))
	require.NoError(t, h.Edit(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID format", errMsg(t, rec))
}
