package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"

	"github.com/kinoteka/movie-catalog/internal/model"
	"github.com/kinoteka/movie-catalog/internal/repository"
)

// seedMovie pairs a movie row with the genre names it should be linked to.
type seedMovie struct {
	movie  model.Movie
	genres []string
}

var seedGenres = []string{
	"Драма",
	"Комедия",
	"Боевик",
	"Триллер",
	"Ужасы",
	"Фантастика",
	"Мелодрама",
	"Приключения",
	"Детектив",
	"Фэнтези",
}

var seedMovies = []seedMovie{
	{
		movie: model.Movie{
			Name:        "Побег из Шоушенка",
			Poster:      "https://m.media-amazon.com/images/M/MV5BNDE3ODcxYzMtY2YzZC00NmNlLWJiNDMtZDViZWM2MzIxZDYwXkEyXkFqcGdeQXVyNjAwNDUxODI@._V1_.jpg",
			Year:        1994,
			Country:     "США",
			Time:        142,
			Tagline:     ptr("Страх - это кандалы. Надежда - это свобода"),
			Description: ptr("История банкира Энди Дюфрейна, обвиненного в убийстве своей жены и ее любовника."),
			Director:    ptr("Фрэнк Дарабонт"),
			Budget:      ptrInt64(25000000),
			Fees:        ptrInt64(73300000),
			AgeLimit:    16,
		},
		genres: []string{"Драма"},
	},
	{
		movie: model.Movie{
			Name:        "Зеленая миля",
			Poster:      "https://m.media-amazon.com/images/M/MV5BMTUxMzQyNjA5MF5BMl5BanBnXkFtZTYwOTU2NTY3._V1_.jpg",
			Year:        1999,
			Country:     "США",
			Time:        189,
			Tagline:     ptr("Чудеса случаются в самых неожиданных местах"),
			Description: ptr("Пол Эджкомб - начальник блока смертников в тюрьме «Холодная гора»."),
			Director:    ptr("Фрэнк Дарабонт"),
			Budget:      ptrInt64(60000000),
			Fees:        ptrInt64(286801374),
			AgeLimit:    16,
		},
		genres: []string{"Драма", "Фантастика"},
	},
	{
		movie: model.Movie{
			Name:        "Форрест Гамп",
			Poster:      "https://m.media-amazon.com/images/M/MV5BNWIwODRlZTUtY2U3ZS00Yzg1LWJhNzYtMmZiYmEyNmU1NjMzXkEyXkFqcGdeQXVyMTQxNzMzNDI@._V1_.jpg",
			Year:        1994,
			Country:     "США",
			Time:        142,
			Tagline:     ptr("Мир уже никогда не будет прежним"),
			Description: ptr("История жизни Форреста Гампа, простого человека с IQ 75."),
			Director:    ptr("Роберт Земекис"),
			Budget:      ptrInt64(55000000),
			Fees:        ptrInt64(678226465),
			AgeLimit:    12,
		},
		genres: []string{"Драма", "Мелодрама"},
	},
	{
		movie: model.Movie{
			Name:        "Начало",
			Poster:      "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_.jpg",
			Year:        2010,
			Country:     "США",
			Time:        148,
			Tagline:     ptr("Твой разум - место преступления"),
			Description: ptr("Кобб - талантливый вор, лучший из лучших в опасном искусстве извлечения."),
			Director:    ptr("Кристофер Нолан"),
			Budget:      ptrInt64(160000000),
			Fees:        ptrInt64(836836967),
			AgeLimit:    12,
		},
		genres: []string{"Фантастика", "Боевик", "Триллер"},
	},
	{
		movie: model.Movie{
			Name:        "Интерстеллар",
			Poster:      "https://m.media-amazon.com/images/M/MV5BZjdkOTU3MDktN2IxOS00OGEyLWFmMjktY2FiMmZkNWIyODZiXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_.jpg",
			Year:        2014,
			Country:     "США",
			Time:        169,
			Tagline:     ptr("Следующий шаг человечества будет величайшим"),
			Description: ptr("Когда засуха приводит человечество к продовольственному кризису, команда исследователей отправляется через червоточину в поисках нового дома."),
			Director:    ptr("Кристофер Нолан"),
			Budget:      ptrInt64(165000000),
			Fees:        ptrInt64(701729206),
			AgeLimit:    12,
		},
		genres: []string{"Фантастика", "Драма", "Приключения"},
	},
	{
		movie: model.Movie{
			Name:        "Матрица",
			Poster:      "https://m.media-amazon.com/images/M/MV5BNzQzOTk3OTAtNDQ0Zi00ZTVkLWI0MTEtMDllZjNkYzNjNTc4L2ltYWdlXkEyXkFqcGdeQXVyNjU0OTQ0OTY@._V1_.jpg",
			Year:        1999,
			Country:     "США",
			Time:        136,
			Tagline:     ptr("Добро пожаловать в реальный мир"),
			Description: ptr("Хакер Нео узнает, что мир, в котором он живет - это иллюзия, созданная машинами."),
			Director:    ptr("Вачовски"),
			Budget:      ptrInt64(63000000),
			Fees:        ptrInt64(463517383),
			AgeLimit:    16,
		},
		genres: []string{"Фантастика", "Боевик"},
	},
}

// Seed populates the catalog with the demo genres and movies. Genres are
// created by name when missing, so re-running the seeder only adds movies.
func Seed(ctx context.Context, db *sql.DB) error {
	genreRepo := repository.NewGenreRepo(db)
	movieRepo := repository.NewMovieRepo(db)

	genresByName := make(map[string]uuid.UUID, len(seedGenres))
	for _, name := range seedGenres {
		g, err := genreRepo.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		genresByName[name] = g.ID
	}

	for _, sm := range seedMovies {
		m := sm.movie
		m.ID = uuid.New()
		if err := movieRepo.Insert(ctx, m); err != nil {
			return err
		}
		for _, name := range sm.genres {
			if err := movieRepo.AttachGenre(ctx, m.ID, genresByName[name]); err != nil {
				return err
			}
		}
		log.Printf("seeded movie %q (%d)", m.Name, m.Year)
	}
	return nil
}

func ptr(s string) *string    { return &s }
func ptrInt64(n int64) *int64 { return &n }
