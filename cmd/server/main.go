package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kinoteka/movie-catalog/internal/config"
	"github.com/kinoteka/movie-catalog/internal/database"
	"github.com/kinoteka/movie-catalog/internal/handler"
	"github.com/kinoteka/movie-catalog/internal/middleware"
	"github.com/kinoteka/movie-catalog/internal/repository"
	"github.com/kinoteka/movie-catalog/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	favoriteRepo := repository.NewFavoriteRepo(db)

	e := echo.New()

	// Redis-backed limiter; nil client turns it into a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := middleware.Auth(cfg.JWTSecret, userRepo)

	router.RegisterRoutes(e)
	router.RegisterAccount(e, handler.NewAccountHandler(cfg, userRepo, tokenRepo), auth)
	router.RegisterMovies(e, handler.NewMovieHandler(movieRepo, genreRepo, reviewRepo))
	router.RegisterFavorites(e, handler.NewFavoriteHandler(favoriteRepo, movieRepo, genreRepo, reviewRepo), auth)
	router.RegisterReviews(e, handler.NewReviewHandler(reviewRepo, movieRepo), auth)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
