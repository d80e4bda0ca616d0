package store

import (
	"github.com/L-1ngg/movie-system/models"
	"gorm.io/gorm"
)

// DeleteUser removes the user with their comments and ratings. Movies
// the user had rated get their cached averages refreshed so the
// derived values stay consistent.
func DeleteUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var movieIDs []uint
		err := tx.Model(&models.Rating{}).
			Where("user_id = ?", id).
			Pluck("movie_id", &movieIDs).Error
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		for _, movieID := range movieIDs {
			if err := refreshMovieRating(tx, movieID); err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
