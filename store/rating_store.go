package store

import (
	"errors"
	"math"

	"github.com/L-1ngg/movie-system/models"
	"gorm.io/gorm"
)

// UpsertRating writes the score for the (user, movie) pair, creating
// the row on first write and updating it afterwards. The movie's
// cached average and count are refreshed in the same transaction.
func UpsertRating(db *gorm.DB, userID, movieID uint, score int) (*models.Rating, error) {
	var rating models.Rating

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Movie{}, movieID).Error; err != nil {
			return err
		}

		err := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&rating).Error
		switch {
		case err == nil:
			rating.Score = score
			if err := tx.Save(&rating).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating = models.Rating{UserID: userID, MovieID: movieID, Score: score}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return refreshMovieRating(tx, movieID)
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// DeleteRating removes the user's rating for the movie. Deleting a
// rating that does not exist is a no-op success.
func DeleteRating(db *gorm.DB, userID, movieID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&models.Rating{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return refreshMovieRating(tx, movieID)
	})
}

// GetRating returns the user's rating for the movie, or
// gorm.ErrRecordNotFound.
func GetRating(db *gorm.DB, userID, movieID uint) (*models.Rating, error) {
	var rating models.Rating
	err := db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// refreshMovieRating recomputes the cached average (one decimal, like
// the column) and count from the rating rows.
func refreshMovieRating(tx *gorm.DB, movieID uint) error {
	var stats struct {
		Count int64
		Avg   float64
	}
	err := tx.Model(&models.Rating{}).
		Where("movie_id = ?", movieID).
		Select("COUNT(*) AS count, COALESCE(AVG(score), 0) AS avg").
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Movie{}).Where("id = ?", movieID).Updates(map[string]interface{}{
		"average_rating": math.Round(stats.Avg*10) / 10,
		"rating_count":   stats.Count,
	}).Error
}
