package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/movie-catalog/internal/repository"
)

func newMovieHandler(db *sql.DB) *MovieHandler {
	return NewMovieHandler(
		repository.NewMovieRepo(db),
		repository.NewGenreRepo(db),
		repository.NewReviewRepo(db))
}

func TestListRejectsBadPage(t *testing.T) {
	for _, page := range []string{"0", "-1", "abc", ""} {
		t.Run("page="+page, func(t *testing.T) {
			db, _ := newMockDB(t)
			h := newMovieHandler(db)

			c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/movies/x", nil))
			c.SetParamNames("page")
			c.SetParamValues(page)
			require.NoError(t, h.List(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "page must be a positive integer", errMsg(t, rec))
		})
	}
}

func TestListPageInfoCountsPages(t *testing.T) {
	db, mock := newMockDB(t)
	h := newMovieHandler(db)

	id1, id2 := uuid.New(), uuid.New()
	rows := sqlmock.NewRows(movieCols)
	movieRow(rows, id1, "first")
	movieRow(rows, id2, "second")

	// 13 movies at 6 per page is 3 pages; page 2 starts at offset 6.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM movies")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(13))
	mock.ExpectQuery(regexp.QuoteMeta("FROM movies ORDER BY created_at, id LIMIT ? OFFSET ?")).
		WithArgs(6, 6).WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM movie_genres mg")).
		WillReturnRows(sqlmock.NewRows([]string{"movie_id", "id", "name"}).
			AddRow(id1.String(), uuid.New().String(), "драма"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews r")).
		WillReturnRows(sqlmock.NewRows(reviewJoinCols))

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/movies/2", nil))
	c.SetParamNames("page")
	c.SetParamValues("2")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := bodyJSON(t, rec)
	movies, _ := body["movies"].([]any)
	require.Len(t, movies, 2)

	pageInfo, _ := body["pageInfo"].(map[string]any)
	assert.EqualValues(t, 6, pageInfo["size"])
	assert.EqualValues(t, 3, pageInfo["count"])
	assert.EqualValues(t, 2, pageInfo["current"])

	first, _ := movies[0].(map[string]any)
	genres, _ := first["genres"].([]any)
	require.Len(t, genres, 1)
	reviews, _ := first["reviews"].([]any)
	assert.Len(t, reviews, 0)
}

func TestListPastEndIsEmptyNotError(t *testing.T) {
	db, mock := newMockDB(t)
	h := newMovieHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM movies")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta("FROM movies ORDER BY created_at, id LIMIT ? OFFSET ?")).
		WithArgs(6, 12).WillReturnRows(sqlmock.NewRows(movieCols))

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/movies/3", nil))
	c.SetParamNames("page")
	c.SetParamValues("3")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := bodyJSON(t, rec)
	movies, _ := body["movies"].([]any)
	assert.Len(t, movies, 0)
	pageInfo, _ := body["pageInfo"].(map[string]any)
	assert.EqualValues(t, 1, pageInfo["count"])
	assert.EqualValues(t, 3, pageInfo["current"])
}

func TestDetailsInvalidID(t *testing.T) {
	db, _ := newMockDB(t)
	h := newMovieHandler(db)

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/movies/details/nope", nil))
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	require.NoError(t, h.Details(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID format", errMsg(t, rec))
}

func TestDetailsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	h := newMovieHandler(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM movies WHERE id=?")).
		WithArgs(id.String()).WillReturnError(sql.ErrNoRows)

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/movies/details/x", nil))
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	require.NoError(t, h.Details(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Movie not found", errMsg(t, rec))
}

func TestDetailsHidesAnonymousAuthor(t *testing.T) {
	db, mock := newMockDB(t)
	h := newMovieHandler(db)

	movieID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM movies WHERE id=?")).
		WithArgs(movieID.String()).
		WillReturnRows(movieRow(sqlmock.NewRows(movieCols), movieID, "Матрица"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM movie_genres mg")).
		WillReturnRows(sqlmock.NewRows([]string{"movie_id", "id", "name"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews r")).
		WillReturnRows(sqlmock.NewRows(reviewJoinCols).
			AddRow(uuid.New().String(), movieID.String(), uuid.New().String(),
				9, "shy but glowing", true, now, now, "hidden_user", nil).
			AddRow(uuid.New().String(), movieID.String(), uuid.New().String(),
				7, "decent", false, now, now, "bob", nil))

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/movies/details/x", nil))
	c.SetParamNames("id")
	c.SetParamValues(movieID.String())
	require.NoError(t, h.Details(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view MovieDetailsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Reviews, 2)

	// The username is joined in either way; the projection must drop it
	// for the anonymous review.
	assert.True(t, view.Reviews[0].IsAnonymous)
	assert.Nil(t, view.Reviews[0].Author)
	require.NotNil(t, view.Reviews[1].Author)
	assert.Equal(t, "bob", view.Reviews[1].Author.NickName)
}
