package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kinoteka/movie-catalog/internal/model"
	"github.com/kinoteka/movie-catalog/internal/repository"
)

// moviePageSize is the fixed page size of the catalog listing.
const moviePageSize = 6

// MovieHandler serves the public catalog endpoints.
type MovieHandler struct {
	Movies  *repository.MovieRepo
	Genres  *repository.GenreRepo
	Reviews *repository.ReviewRepo
}

func NewMovieHandler(m *repository.MovieRepo, g *repository.GenreRepo, r *repository.ReviewRepo) *MovieHandler {
	return &MovieHandler{Movies: m, Genres: g, Reviews: r}
}

// List returns one page of the catalog. Pages are 1-indexed; pageInfo
// reports the total page count, and a page past the end yields an empty
// movie list with the same pageInfo rather than an error.
func (h *MovieHandler) List(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "page must be a positive integer"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	total, err := h.Movies.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	totalPages := (total + moviePageSize - 1) / moviePageSize

	movies, err := h.Movies.ListPage(ctx, (page-1)*moviePageSize, moviePageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	elements, err := buildMovieElements(ctx, h.Genres, h.Reviews, movies)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"movies": elements,
		"pageInfo": PageInfoView{
			Size:    moviePageSize,
			Count:   totalPages,
			Current: page,
		},
	})
}

// Details returns the full projection of a single movie, including its
// genres and reviews. Anonymous reviews carry a null author.
func (h *MovieHandler) Details(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ID format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	elements, err := buildMovieElements(ctx, h.Genres, h.Reviews, []model.Movie{m})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, MovieDetailsView{
		MovieElementView: elements[0],
		Time:             m.Time,
		Tagline:          m.Tagline,
		Description:      m.Description,
		Director:         m.Director,
		Budget:           m.Budget,
		Fees:             m.Fees,
		AgeLimit:         m.AgeLimit,
	})
}
