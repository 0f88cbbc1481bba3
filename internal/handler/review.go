package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kinoteka/movie-catalog/internal/model"
	"github.com/kinoteka/movie-catalog/internal/repository"
)

// ReviewHandler serves the authenticated review endpoints nested under
// /api/movie/:movieId.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
	Movies  *repository.MovieRepo
}

func NewReviewHandler(r *repository.ReviewRepo, m *repository.MovieRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Movies: m}
}

type reviewModifyReq struct {
	ReviewText  string `json:"reviewText"`
	Rating      *int   `json:"rating"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// validate checks text and rating bounds and returns a client-facing
// error message, or "" when the body is acceptable.
func (r *reviewModifyReq) validate() string {
	if strings.TrimSpace(r.ReviewText) == "" {
		return "reviewText must not be empty"
	}
	if r.Rating == nil || *r.Rating < 0 || *r.Rating > 10 {
		return "rating must be between 0 and 10"
	}
	return ""
}

// Add creates a review. A user gets one review per movie; a second
// attempt conflicts until the first is deleted.
func (h *ReviewHandler) Add(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ID format"})
	}
	var req reviewModifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
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

	reviewed, err := h.Reviews.ExistsForUserAndMovie(ctx, u.ID, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if reviewed {
		return c.JSON(http.StatusConflict, echo.Map{"error": "You have already reviewed this movie"})
	}

	rv := model.Review{
		ID:          uuid.New(),
		MovieID:     movieID,
		UserID:      u.ID,
		Rating:      *req.Rating,
		ReviewText:  req.ReviewText,
		IsAnonymous: req.IsAnonymous,
	}
	if err := h.Reviews.Create(ctx, rv); err != nil {
		// The unique index catches a racing duplicate past the pre-check.
		if err == repository.ErrDuplicateReview {
			return c.JSON(http.StatusConflict, echo.Map{"error": "You have already reviewed this movie"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Review added successfully"})
}

// loadOwned fetches a review and enforces the movie-scoping and ownership
// rules shared by Edit and Delete. A review that exists under another
// movie is reported as absent so review ids cannot be confirmed across
// movies; only genuine ownership mismatches yield 403.
func (h *ReviewHandler) loadOwned(ctx context.Context, c echo.Context, userID uuid.UUID, action string) (model.Review, bool) {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ID format"})
		return model.Review{}, false
	}
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ID format"})
		return model.Review{}, false
	}

	rv, err := h.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if err == repository.ErrReviewNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return model.Review{}, false
	}
	if rv.MovieID != movieID {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found for this movie"})
		return model.Review{}, false
	}
	if rv.UserID != userID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "You can only " + action + " your own reviews"})
		return model.Review{}, false
	}
	return rv, true
}

// Edit overwrites an owned review's rating, text and anonymity flag.
func (h *ReviewHandler) Edit(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reviewModifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rv, ok := h.loadOwned(ctx, c, u.ID, "edit")
	if !ok {
		return nil
	}
	if err := h.Reviews.Update(ctx, rv.ID, *req.Rating, req.ReviewText, req.IsAnonymous); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Review updated successfully"})
}

// Delete removes an owned review. Deleting frees the (user, movie) slot
// for a future review.
func (h *ReviewHandler) Delete(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rv, ok := h.loadOwned(ctx, c, u.ID, "delete")
	if !ok {
		return nil
	}
	if err := h.Reviews.Delete(ctx, rv.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Review deleted successfully"})
}
