package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/kinoteka/movie-catalog/internal/handler"
)

// RegisterRoutes registers routes that carry no authentication at all:
// the root greeting and the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.Health)
}

// RegisterAccount wires the account endpoints. Registration and login are
// open; logout and the profile pair require a valid bearer token resolved
// by the auth middleware.
func RegisterAccount(e *echo.Echo, a *handler.AccountHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/api/account")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout, auth)
	g.GET("/profile", a.GetProfile, auth)
	g.PUT("/profile", a.UpdateProfile, auth)
}

// RegisterMovies wires the public catalog endpoints. The details route
// shares the /api/movies prefix with the paged listing; echo matches the
// static "details" segment before the :page parameter.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler) {
	e.GET("/api/movies/:page", m.List)
	e.GET("/api/movies/details/:id", m.Details)
}

// RegisterFavorites wires the favorites endpoints; all require auth.
func RegisterFavorites(e *echo.Echo, f *handler.FavoriteHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/api/favorites", auth)
	g.GET("/", f.List)
	g.POST("/:id/add", f.Add)
	g.DELETE("/:id/delete", f.Remove)
}

// RegisterReviews wires the review endpoints nested under a movie; all
// require auth.
func RegisterReviews(e *echo.Echo, r *handler.ReviewHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/api/movie", auth)
	g.POST("/:movieId/review/add", r.Add)
	g.PUT("/:movieId/review/:id/edit", r.Edit)
	g.DELETE("/:movieId/review/:id/delete", r.Delete)
}
