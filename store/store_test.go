package store

import (
	"testing"

	"github.com/L-1ngg/movie-system/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Movie{},
		&models.Actor{},
		&models.Director{},
		&models.Comment{},
		&models.Rating{},
	)
	require.NoError(t, err)

	return db
}

type catalog struct {
	actors    []models.Actor
	directors []models.Director
	movies    []models.Movie
}

// seedCatalog builds a small fixed catalog:
//
//	#1 The Shawshank Redemption 1994 剧情/犯罪 9.7  actors: Tim Robbins, Morgan Freeman  director: Frank Darabont
//	#2 Se7en                    1995 惊悚/犯罪 8.8  actors: Morgan Freeman               director: David Fincher
//	#3 The Green Mile           1999 剧情/奇幻 8.8  actors: Tom Hanks                    director: Frank Darabont
func seedCatalog(t *testing.T, db *gorm.DB) catalog {
	t.Helper()

	actors := []models.Actor{
		{Name: "Tim Robbins", Gender: "male"},
		{Name: "Morgan Freeman", Gender: "male"},
		{Name: "Tom Hanks", Gender: "male"},
	}
	require.NoError(t, db.Create(&actors).Error)

	directors := []models.Director{
		{Name: "Frank Darabont", Gender: "male"},
		{Name: "David Fincher", Gender: "male"},
	}
	require.NoError(t, db.Create(&directors).Error)

	specs := []struct {
		create MovieCreate
		rating float64
	}{
		{
			create: MovieCreate{
				Title: "The Shawshank Redemption", ReleaseYear: 1994, Duration: 142,
				Genre: "剧情/犯罪", Language: "English", Country: "USA",
				ActorIDs:    &[]uint{actors[0].ID, actors[1].ID},
				DirectorIDs: &[]uint{directors[0].ID},
			},
			rating: 9.7,
		},
		{
			create: MovieCreate{
				Title: "Se7en", ReleaseYear: 1995, Duration: 127,
				Genre: "惊悚/犯罪", Language: "English", Country: "USA",
				ActorIDs:    &[]uint{actors[1].ID},
				DirectorIDs: &[]uint{directors[1].ID},
			},
			rating: 8.8,
		},
		{
			create: MovieCreate{
				Title: "The Green Mile", ReleaseYear: 1999, Duration: 189,
				Genre: "剧情/奇幻", Language: "English", Country: "USA",
				ActorIDs:    &[]uint{actors[2].ID},
				DirectorIDs: &[]uint{directors[0].ID},
			},
			rating: 8.8,
		},
	}

	var movies []models.Movie
	for _, spec := range specs {
		movie, err := CreateMovie(db, spec.create)
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.Movie{}).
			Where("id = ?", movie.ID).
			Update("average_rating", spec.rating).Error)
		movie.AverageRating = spec.rating
		movies = append(movies, *movie)
	}

	return catalog{actors: actors, directors: directors, movies: movies}
}

func movieIDs(movies []models.Movie) []uint {
	ids := make([]uint, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}
	return ids
}

func actorIDs(actors []models.Actor) []uint {
	ids := make([]uint, 0, len(actors))
	for _, a := range actors {
		ids = append(ids, a.ID)
	}
	return ids
}
