package controllers

import (
	"net/http"
	"strconv"

	"github.com/L-1ngg/movie-system/middlewares"
	"github.com/L-1ngg/movie-system/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type commentInput struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment handles POST /movies/:id/comments.
func CreateComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		movieID, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
			return
		}

		if err := db.First(&models.Movie{}, movieID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}

		var input commentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		comment := models.Comment{
			MovieID: movieID,
			UserID:  middlewares.CurrentUserID(c),
			Content: input.Content,
		}
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
			return
		}

		db.Preload("User").First(&comment, comment.ID)
		c.JSON(http.StatusCreated, comment)
	}
}

// ListComments handles GET /movies/:id/comments with pagination.
func ListComments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		movieID, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
			return
		}

		skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit < 0 || skip < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination"})
			return
		}

		comments := []models.Comment{}
		err = db.Preload("User").
			Where("movie_id = ?", movieID).
			Order("created_at DESC, id DESC").
			Offset(skip).Limit(limit).
			Find(&comments).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}

		c.JSON(http.StatusOK, comments)
	}
}

// UpdateComment handles PUT /comments/:id; only the author may edit.
func UpdateComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var comment models.Comment
		if err := db.First(&comment, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}

		if comment.UserID != middlewares.CurrentUserID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify another user's comment"})
			return
		}

		var input commentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		comment.Content = input.Content
		if err := db.Save(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
			return
		}

		db.Preload("User").First(&comment, comment.ID)
		c.JSON(http.StatusOK, comment)
	}
}

// DeleteComment handles DELETE /comments/:id; only the author may
// delete.
func DeleteComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var comment models.Comment
		if err := db.First(&comment, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}

		if comment.UserID != middlewares.CurrentUserID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another user's comment"})
			return
		}

		if err := db.Delete(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
			return
		}

		c.JSON(http.StatusOK, comment)
	}
}
