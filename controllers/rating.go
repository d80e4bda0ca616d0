package controllers

import (
	"errors"
	"net/http"

	"github.com/L-1ngg/movie-system/middlewares"
	"github.com/L-1ngg/movie-system/store"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RateMovie handles POST /movies/:id/ratings. A second rating from the
// same user updates the existing one.
func RateMovie(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		movieID, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
			return
		}

		var input struct {
			Score int `json:"score" binding:"required,gte=1,lte=10"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "score must be between 1 and 10"})
			return
		}

		rating, err := store.UpsertRating(db, middlewares.CurrentUserID(c), movieID, input.Score)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
			return
		}

		c.JSON(http.StatusOK, rating)
	}
}

// DeleteRating handles DELETE /movies/:id/ratings. Removing a rating
// that never existed still succeeds.
func DeleteRating(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		movieID, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
			return
		}

		if err := store.DeleteRating(db, middlewares.CurrentUserID(c), movieID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rating"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
