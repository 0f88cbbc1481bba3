package model

import (
	"time"

	"github.com/google/uuid"
)

// Movie mirrors the `movies` table. The catalog is read-mostly: rows are
// created by the seeder and there are no HTTP write endpoints for movies.
//
// Fields:
//  ID          – primary key.
//  Name        – movie title.
//  Poster      – poster image URL.
//  Year        – release year.
//  Country     – production country.
//  Time        – runtime in minutes.
//  Tagline     – optional tagline (nullable).
//  Description – optional plot description (nullable).
//  Director    – optional director name (nullable).
//  Budget      – optional production budget (nullable).
//  Fees        – optional box office gross (nullable).
//  AgeLimit    – minimum viewer age.
//  CreatedAt   – timestamp of creation.
type Movie struct {
	ID          uuid.UUID // movies.id
	Name        string    // movies.name
	Poster      string    // movies.poster
	Year        int       // movies.year
	Country     string    // movies.country
	Time        int       // movies.time
	Tagline     *string   // movies.tagline (nullable)
	Description *string   // movies.description (nullable)
	Director    *string   // movies.director (nullable)
	Budget      *int64    // movies.budget (nullable)
	Fees        *int64    // movies.fees (nullable)
	AgeLimit    int       // movies.age_limit
	CreatedAt   time.Time // movies.created_at
}

// Genre mirrors the `genres` table. Genres relate to movies many-to-many
// through the `movie_genres` join table; both sides cascade on delete.
type Genre struct {
	ID   uuid.UUID // genres.id
	Name string    // genres.name (unique)
}
