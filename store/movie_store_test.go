package store

import (
	"testing"

	"github.com/L-1ngg/movie-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSearchMoviesEmptyCriteria(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)

	movies, err := SearchMovies(db, MovieFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, movies, 3)

	// default sort: average_rating DESC, id ASC as tiebreak
	assert.Equal(t, cat.movies[0].ID, movies[0].ID)
	assert.Equal(t, cat.movies[1].ID, movies[1].ID)
	assert.Equal(t, cat.movies[2].ID, movies[2].ID)

	// results come back hydrated
	assert.Len(t, movies[0].Actors, 2)
	assert.Len(t, movies[0].Directors, 1)
}

func TestSearchMoviesFilters(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)

	t.Run("genre substring", func(t *testing.T) {
		movies, err := SearchMovies(db, MovieFilter{Genre: "犯罪", Limit: 100})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{cat.movies[0].ID, cat.movies[1].ID}, movieIDs(movies))
	})

	t.Run("year exact", func(t *testing.T) {
		movies, err := SearchMovies(db, MovieFilter{Year: 1995, Limit: 100})
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Se7en", movies[0].Title)
	})

	t.Run("min rating inclusive", func(t *testing.T) {
		minRating := 8.8
		movies, err := SearchMovies(db, MovieFilter{MinRating: &minRating, Limit: 100})
		require.NoError(t, err)
		assert.Len(t, movies, 3)

		minRating = 9.0
		movies, err = SearchMovies(db, MovieFilter{MinRating: &minRating, Limit: 100})
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "The Shawshank Redemption", movies[0].Title)
	})

	t.Run("title search case-insensitive", func(t *testing.T) {
		movies, err := SearchMovies(db, MovieFilter{Search: "shawshank", Limit: 100})
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, cat.movies[0].ID, movies[0].ID)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		minRating := 9.0
		movies, err := SearchMovies(db, MovieFilter{Genre: "犯罪", MinRating: &minRating, Limit: 100})
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, cat.movies[0].ID, movies[0].ID)

		movies, err = SearchMovies(db, MovieFilter{Genre: "犯罪", Year: 1999, Limit: 100})
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("no match is empty not error", func(t *testing.T) {
		movies, err := SearchMovies(db, MovieFilter{Search: "nonexistent", Limit: 100})
		require.NoError(t, err)
		assert.Empty(t, movies)
	})
}

func TestSearchMoviesByPersonName(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)

	t.Run("actor name", func(t *testing.T) {
		movies, err := SearchMovies(db, MovieFilter{Search: "morgan", Limit: 100})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{cat.movies[0].ID, cat.movies[1].ID}, movieIDs(movies))
	})

	t.Run("director name", func(t *testing.T) {
		movies, err := SearchMovies(db, MovieFilter{Search: "fincher", Limit: 100})
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Se7en", movies[0].Title)
	})

	t.Run("no duplicates when several people match", func(t *testing.T) {
		// give Shawshank an actor whose name also matches "frank", so the
		// movie matches through an actor AND its director
		frank := models.Actor{Name: "Frank Sinatra", Gender: "male"}
		require.NoError(t, db.Create(&frank).Error)
		ids := append(actorIDs(cat.actors[:2]), frank.ID)
		_, err := UpdateMovie(db, cat.movies[0].ID, MovieUpdate{ActorIDs: &ids})
		require.NoError(t, err)

		movies, err := SearchMovies(db, MovieFilter{Search: "frank", Limit: 100})
		require.NoError(t, err)

		seen := map[uint]int{}
		for _, m := range movies {
			seen[m.ID]++
		}
		assert.Equal(t, 1, seen[cat.movies[0].ID], "movie must appear exactly once")
		assert.Equal(t, 1, seen[cat.movies[2].ID]) // The Green Mile via Frank Darabont
	})
}

func TestSearchMoviesSortAndPagination(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)

	t.Run("release year desc", func(t *testing.T) {
		movies, err := SearchMovies(db, MovieFilter{SortBy: SortReleaseYearDesc, Limit: 100})
		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, 1999, movies[0].ReleaseYear)
		assert.Equal(t, 1995, movies[1].ReleaseYear)
		assert.Equal(t, 1994, movies[2].ReleaseYear)
	})

	t.Run("unrecognized sort falls back to rating desc", func(t *testing.T) {
		movies, err := SearchMovies(db, MovieFilter{SortBy: "bogus", Limit: 100})
		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, cat.movies[0].ID, movies[0].ID)
	})

	t.Run("ties broken by id ascending", func(t *testing.T) {
		// movies #2 and #3 share rating 8.8
		movies, err := SearchMovies(db, MovieFilter{SortBy: SortRatingDesc, Limit: 100})
		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, cat.movies[1].ID, movies[1].ID)
		assert.Equal(t, cat.movies[2].ID, movies[2].ID)
	})

	t.Run("pages are disjoint and stable", func(t *testing.T) {
		first, err := SearchMovies(db, MovieFilter{Limit: 2})
		require.NoError(t, err)
		second, err := SearchMovies(db, MovieFilter{Skip: 2, Limit: 2})
		require.NoError(t, err)

		require.Len(t, first, 2)
		require.Len(t, second, 1)
		assert.NotContains(t, movieIDs(first), second[0].ID)
	})

	t.Run("limit zero yields empty", func(t *testing.T) {
		movies, err := SearchMovies(db, MovieFilter{Limit: 0})
		require.NoError(t, err)
		assert.Empty(t, movies)
	})
}

func TestReconcileAssociations(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	movieID := cat.movies[0].ID

	t.Run("replace not merge", func(t *testing.T) {
		// created with actors {0,1}; update to {1,2}
		ids := []uint{cat.actors[1].ID, cat.actors[2].ID}
		movie, err := UpdateMovie(db, movieID, MovieUpdate{ActorIDs: &ids})
		require.NoError(t, err)
		assert.ElementsMatch(t, ids, actorIDs(movie.Actors))
	})

	t.Run("omitted list leaves set untouched", func(t *testing.T) {
		title := "Renamed"
		movie, err := UpdateMovie(db, movieID, MovieUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", movie.Title)
		assert.Len(t, movie.Actors, 2)
		assert.Len(t, movie.Directors, 1)
	})

	t.Run("unknown ids silently dropped", func(t *testing.T) {
		ids := []uint{cat.actors[0].ID, 9999}
		movie, err := UpdateMovie(db, movieID, MovieUpdate{ActorIDs: &ids})
		require.NoError(t, err)
		require.Len(t, movie.Actors, 1)
		assert.Equal(t, cat.actors[0].ID, movie.Actors[0].ID)
	})

	t.Run("empty list clears the set", func(t *testing.T) {
		empty := []uint{}
		movie, err := UpdateMovie(db, movieID, MovieUpdate{ActorIDs: &empty})
		require.NoError(t, err)
		assert.Empty(t, movie.Actors)
		assert.Len(t, movie.Directors, 1, "director set untouched")
	})

	t.Run("directors reconcile the same way", func(t *testing.T) {
		ids := []uint{cat.directors[1].ID}
		movie, err := UpdateMovie(db, movieID, MovieUpdate{DirectorIDs: &ids})
		require.NoError(t, err)
		require.Len(t, movie.Directors, 1)
		assert.Equal(t, cat.directors[1].ID, movie.Directors[0].ID)
	})
}

func TestUpdateMovieNotFound(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	title := "whatever"
	_, err := UpdateMovie(db, 9999, MovieUpdate{Title: &title})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateThenUpdateAssociationsEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)

	created, err := CreateMovie(db, MovieCreate{
		Title:    "Cast Away",
		ActorIDs: &[]uint{cat.actors[0].ID, cat.actors[1].ID},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{cat.actors[0].ID, cat.actors[1].ID}, actorIDs(created.Actors))

	updated, err := UpdateMovie(db, created.ID, MovieUpdate{
		ActorIDs: &[]uint{cat.actors[1].ID, cat.actors[2].ID},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{cat.actors[1].ID, cat.actors[2].ID}, actorIDs(updated.Actors))
}

func TestDeleteMovieCascades(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	movieID := cat.movies[0].ID

	user := models.User{Username: "viewer", Email: "viewer@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Comment{MovieID: movieID, UserID: user.ID, Content: "great"}).Error)
	_, err := UpsertRating(db, user.ID, movieID, 10)
	require.NoError(t, err)

	deleted, err := DeleteMovie(db, movieID)
	require.NoError(t, err)
	assert.Equal(t, movieID, deleted.ID)

	_, err = GetMovie(db, movieID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var joinRows int64
	require.NoError(t, db.Table("movie_actors").Where("movie_id = ?", movieID).Count(&joinRows).Error)
	assert.Zero(t, joinRows)
	require.NoError(t, db.Table("movie_directors").Where("movie_id = ?", movieID).Count(&joinRows).Error)
	assert.Zero(t, joinRows)

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Where("movie_id = ?", movieID).Count(&comments).Error)
	assert.Zero(t, comments)
	var ratings int64
	require.NoError(t, db.Model(&models.Rating{}).Where("movie_id = ?", movieID).Count(&ratings).Error)
	assert.Zero(t, ratings)

	// other movies untouched
	remaining, err := SearchMovies(db, MovieFilter{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	_, err = DeleteMovie(db, movieID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDistinctGenres(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	// untagged and whitespace-heavy rows must not break tokenizing
	require.NoError(t, db.Create(&models.Movie{Title: "Untagged"}).Error)
	require.NoError(t, db.Create(&models.Movie{Title: "Padded", Genre: " 剧情 / 爱情 /"}).Error)

	genres, err := DistinctGenres(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"剧情", "奇幻", "惊悚", "爱情", "犯罪"}, genres)

	again, err := DistinctGenres(db)
	require.NoError(t, err)
	assert.Equal(t, genres, again, "idempotent and order-stable")
}

func TestFindByIDs(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)

	actors, err := FindActorsByIDs(db, []uint{cat.actors[0].ID, 12345})
	require.NoError(t, err)
	require.Len(t, actors, 1)
	assert.Equal(t, cat.actors[0].ID, actors[0].ID)

	actors, err = FindActorsByIDs(db, nil)
	require.NoError(t, err)
	assert.Empty(t, actors)

	directors, err := FindDirectorsByIDs(db, []uint{cat.directors[1].ID})
	require.NoError(t, err)
	require.Len(t, directors, 1)
	assert.Equal(t, "David Fincher", directors[0].Name)
}
