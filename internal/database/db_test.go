package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinoteka/movie-catalog/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "app",
		DBPass: "pw",
		DBHost: "db",
		DBPort: "3306",
		DBName: "movies",
	}
	s := dsn(cfg)
	assert.Contains(t, s, "app:pw@tcp(db:3306)/movies")
	assert.Contains(t, s, "parseTime=true")
	assert.Contains(t, s, "charset=utf8mb4")
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "app",
		DBHost: "localhost",
		DBPort: "3306",
		DBName: "movies",
	}
	assert.Contains(t, dsn(cfg), "app@tcp(localhost:3306)/movies")
}
