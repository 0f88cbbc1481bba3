// Package handler exposes the HTTP handlers of the movie catalog API.
// This file defines the response projections shared by the catalog and
// favorites endpoints, and the batch builder that assembles them. Genre
// and review lists are fetched with one IN query each, so building a page
// of projections costs a constant number of database round trips.
package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kinoteka/movie-catalog/internal/model"
	"github.com/kinoteka/movie-catalog/internal/repository"
)

// GenreView is a genre as exposed in movie projections.
type GenreView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AuthorView identifies a review's author. It is omitted entirely for
// anonymous reviews; nothing in the response may reveal who wrote one.
type AuthorView struct {
	UserID   uuid.UUID `json:"userId"`
	NickName string    `json:"nickName"`
	Avatar   *string   `json:"avatar"`
}

// ReviewView is a review as embedded in movie projections.
type ReviewView struct {
	ID             uuid.UUID   `json:"id"`
	Rating         int         `json:"rating"`
	ReviewText     string      `json:"reviewText"`
	IsAnonymous    bool        `json:"isAnonymous"`
	CreateDateTime time.Time   `json:"createDateTime"`
	Author         *AuthorView `json:"author"`
}

// MovieElementView is the list-element projection of a movie, shared by
// the paged catalog and the favorites list.
type MovieElementView struct {
	ID      uuid.UUID    `json:"id"`
	Name    string       `json:"name"`
	Poster  string       `json:"poster"`
	Year    int          `json:"year"`
	Country string       `json:"country"`
	Genres  []GenreView  `json:"genres"`
	Reviews []ReviewView `json:"reviews"`
}

// MovieDetailsView extends the element projection with the full movie
// record for the details endpoint.
type MovieDetailsView struct {
	MovieElementView
	Time        int     `json:"time"`
	Tagline     *string `json:"tagline"`
	Description *string `json:"description"`
	Director    *string `json:"director"`
	Budget      *int64  `json:"budget"`
	Fees        *int64  `json:"fees"`
	AgeLimit    int     `json:"ageLimit"`
}

// PageInfoView describes one page of the catalog listing. Count is the
// total number of pages, not items.
type PageInfoView struct {
	Size    int `json:"size"`
	Count   int `json:"count"`
	Current int `json:"current"`
}

// buildMovieElements assembles element projections for a batch of movies.
func buildMovieElements(ctx context.Context, genres *repository.GenreRepo, reviews *repository.ReviewRepo, movies []model.Movie) ([]MovieElementView, error) {
	ids := make([]uuid.UUID, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}

	genresByMovie, err := genres.ByMovieIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	reviewsByMovie, err := reviews.ByMovieIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]MovieElementView, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieElementView{
			ID:      m.ID,
			Name:    m.Name,
			Poster:  m.Poster,
			Year:    m.Year,
			Country: m.Country,
			Genres:  genreViews(genresByMovie[m.ID]),
			Reviews: reviewViews(reviewsByMovie[m.ID]),
		})
	}
	return out, nil
}

func genreViews(gs []model.Genre) []GenreView {
	out := make([]GenreView, 0, len(gs))
	for _, g := range gs {
		out = append(out, GenreView{ID: g.ID, Name: g.Name})
	}
	return out
}

func reviewViews(rvs []repository.ReviewWithAuthor) []ReviewView {
	out := make([]ReviewView, 0, len(rvs))
	for _, rv := range rvs {
		var author *AuthorView
		if !rv.IsAnonymous {
			author = &AuthorView{
				UserID:   rv.UserID,
				NickName: rv.AuthorUsername,
				Avatar:   rv.AuthorAvatar,
			}
		}
		out = append(out, ReviewView{
			ID:             rv.ID,
			Rating:         rv.Rating,
			ReviewText:     rv.ReviewText,
			IsAnonymous:    rv.IsAnonymous,
			CreateDateTime: rv.CreatedAt,
			Author:         author,
		})
	}
	return out
}
