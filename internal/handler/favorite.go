package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kinoteka/movie-catalog/internal/repository"
)

// FavoriteHandler serves the authenticated favorites endpoints.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
	Movies    *repository.MovieRepo
	Genres    *repository.GenreRepo
	Reviews   *repository.ReviewRepo
}

func NewFavoriteHandler(f *repository.FavoriteRepo, m *repository.MovieRepo, g *repository.GenreRepo, r *repository.ReviewRepo) *FavoriteHandler {
	return &FavoriteHandler{Favorites: f, Movies: m, Genres: g, Reviews: r}
}

// List returns full projections for every favorited movie. The favorites
// list is not paginated, unlike the main catalog.
func (h *FavoriteHandler) List(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	movies, err := h.Favorites.ListMovies(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	elements, err := buildMovieElements(ctx, h.Genres, h.Reviews, movies)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": elements})
}

// Add favorites a movie for the current user. Favoriting twice is a
// conflict, not a no-op.
func (h *FavoriteHandler) Add(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ID format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	exists, err := h.Movies.Exists(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found"})
	}

	already, err := h.Favorites.Exists(ctx, u.ID, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if already {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Movie already in favorites"})
	}

	if err := h.Favorites.Add(ctx, u.ID, movieID); err != nil {
		// The composite primary key backstops the pre-check under
		// concurrency.
		if err == repository.ErrDuplicateFavorite {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Movie already in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Movie added to favorites"})
}

// Remove deletes the favorite marker. The delete itself detects absence,
// so there is no separate existence check to race against.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ID format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Favorites.Remove(ctx, u.ID, movieID); err != nil {
		if err == repository.ErrFavoriteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Movie removed from favorites"})
}
