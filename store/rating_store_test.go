package store

import (
	"testing"

	"github.com/L-1ngg/movie-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUsers(t *testing.T, db *gorm.DB) []models.User {
	t.Helper()
	users := []models.User{
		{Username: "alice", Email: "alice@example.com", PasswordHash: "x"},
		{Username: "bob", Email: "bob@example.com", PasswordHash: "x"},
	}
	require.NoError(t, db.Create(&users).Error)
	return users
}

func TestUpsertRating(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	users := seedUsers(t, db)
	movieID := cat.movies[1].ID

	rating, err := UpsertRating(db, users[0].ID, movieID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, rating.Score)

	var movie models.Movie
	require.NoError(t, db.First(&movie, movieID).Error)
	assert.Equal(t, int64(1), movie.RatingCount)
	assert.Equal(t, 9.0, movie.AverageRating)

	// same (user, movie) pair updates instead of duplicating
	rating, err = UpsertRating(db, users[0].ID, movieID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Score)

	var rows int64
	require.NoError(t, db.Model(&models.Rating{}).
		Where("user_id = ? AND movie_id = ?", users[0].ID, movieID).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	require.NoError(t, db.First(&movie, movieID).Error)
	assert.Equal(t, int64(1), movie.RatingCount)
	assert.Equal(t, 5.0, movie.AverageRating)

	// second user's rating moves the cached average
	_, err = UpsertRating(db, users[1].ID, movieID, 8)
	require.NoError(t, err)

	require.NoError(t, db.First(&movie, movieID).Error)
	assert.Equal(t, int64(2), movie.RatingCount)
	assert.Equal(t, 6.5, movie.AverageRating)
}

func TestUpsertRatingMovieNotFound(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db)

	_, err := UpsertRating(db, users[0].ID, 9999, 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRating(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	users := seedUsers(t, db)
	movieID := cat.movies[2].ID

	// deleting a rating that never existed is a no-op success
	require.NoError(t, DeleteRating(db, users[0].ID, movieID))

	_, err := UpsertRating(db, users[0].ID, movieID, 6)
	require.NoError(t, err)
	require.NoError(t, DeleteRating(db, users[0].ID, movieID))

	_, err = GetRating(db, users[0].ID, movieID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var movie models.Movie
	require.NoError(t, db.First(&movie, movieID).Error)
	assert.Equal(t, int64(0), movie.RatingCount)
	assert.Equal(t, 0.0, movie.AverageRating)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	cat := seedCatalog(t, db)
	users := seedUsers(t, db)
	movieID := cat.movies[0].ID

	require.NoError(t, db.Create(&models.Comment{MovieID: movieID, UserID: users[0].ID, Content: "!"}).Error)
	_, err := UpsertRating(db, users[0].ID, movieID, 10)
	require.NoError(t, err)
	_, err = UpsertRating(db, users[1].ID, movieID, 4)
	require.NoError(t, err)

	deleted, err := DeleteUser(db, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, users[0].ID, deleted.ID)

	var comments, ratings int64
	require.NoError(t, db.Model(&models.Comment{}).Where("user_id = ?", users[0].ID).Count(&comments).Error)
	assert.Zero(t, comments)
	require.NoError(t, db.Model(&models.Rating{}).Where("user_id = ?", users[0].ID).Count(&ratings).Error)
	assert.Zero(t, ratings)

	// cached aggregate reflects the remaining rating only
	var movie models.Movie
	require.NoError(t, db.First(&movie, movieID).Error)
	assert.Equal(t, int64(1), movie.RatingCount)
	assert.Equal(t, 4.0, movie.AverageRating)

	_, err = DeleteUser(db, users[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
