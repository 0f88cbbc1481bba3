package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinoteka/movie-catalog/internal/middleware"
	"github.com/kinoteka/movie-catalog/internal/model"
)

var errBadBirthDate = errors.New("invalid birth date format")

// dbTimeout bounds every database round trip made from a handler.
const dbTimeout = 5 * time.Second

// currentUser returns the user resolved by the auth middleware. Protected
// routes always have one; a nil return means a wiring mistake, which the
// caller reports as 401.
func currentUser(c echo.Context) *model.User {
	return middleware.CurrentUser(c)
}

// birthDateLayouts lists the accepted formats, most specific first.
// Timestamps without a zone are interpreted as UTC so that the not-in-
// the-future comparison is timezone-consistent.
var birthDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseBirthDate parses an optional birth date string. It returns nil for
// an empty input and an error for an unparseable one.
func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	for _, layout := range birthDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errBadBirthDate
}
