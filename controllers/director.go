package controllers

import (
	"net/http"
	"strconv"

	"github.com/L-1ngg/movie-system/models"
	"github.com/L-1ngg/movie-system/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type directorCreateInput struct {
	Name        string  `json:"name" binding:"required"`
	Gender      string  `json:"gender" binding:"omitempty,oneof=male female other"`
	BirthDate   *string `json:"birth_date"`
	Nationality *string `json:"nationality"`
}

type directorUpdateInput struct {
	Name        *string `json:"name"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female other"`
	BirthDate   *string `json:"birth_date"`
	Nationality *string `json:"nationality"`
}

// ListDirectors handles GET /directors with skip/limit pagination.
func ListDirectors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit < 0 || skip < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination"})
			return
		}

		directors := []models.Director{}
		if err := db.Order("id ASC").Offset(skip).Limit(limit).Find(&directors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch directors"})
			return
		}
		c.JSON(http.StatusOK, directors)
	}
}

func GetDirector(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var director models.Director
		if err := db.First(&director, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Director not found"})
			return
		}
		c.JSON(http.StatusOK, director)
	}
}

// CreateDirector handles POST /directors (admin).
func CreateDirector(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input directorCreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		director := models.Director{
			Name:        input.Name,
			Gender:      input.Gender,
			Nationality: input.Nationality,
		}
		if director.Gender == "" {
			director.Gender = "other"
		}
		if input.BirthDate != nil {
			birthDate, err := parseBirthDate(*input.BirthDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
				return
			}
			director.BirthDate = birthDate
		}

		if err := db.Create(&director).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create director"})
			return
		}
		c.JSON(http.StatusCreated, director)
	}
}

// UpdateDirector handles PUT /directors/:id (admin), partial update.
func UpdateDirector(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var director models.Director
		if err := db.First(&director, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Director not found"})
			return
		}

		var input directorUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Name != nil {
			director.Name = *input.Name
		}
		if input.Gender != nil {
			director.Gender = *input.Gender
		}
		if input.BirthDate != nil {
			birthDate, err := parseBirthDate(*input.BirthDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
				return
			}
			director.BirthDate = birthDate
		}
		if input.Nationality != nil {
			director.Nationality = input.Nationality
		}

		if err := db.Save(&director).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update director"})
			return
		}
		c.JSON(http.StatusOK, director)
	}
}

// DeleteDirector handles DELETE /directors/:id (admin).
func DeleteDirector(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var director models.Director
		if err := db.First(&director, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Director not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM movie_directors WHERE director_id = ?", director.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&director).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete director"})
			return
		}
		c.JSON(http.StatusOK, director)
	}
}

// UploadDirectorPhoto handles POST /directors/:id/photo (admin, multipart).
func UploadDirectorPhoto(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var director models.Director
		if err := db.First(&director, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Director not found"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		photoURL, err := utils.SaveImage(c, file, uploadDir, "directors")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		oldURL := ""
		if director.PhotoURL != nil {
			oldURL = *director.PhotoURL
		}

		if err := db.Model(&director).Update("photo_url", photoURL).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update photo"})
			return
		}

		utils.RemoveImage(uploadDir, oldURL)
		c.JSON(http.StatusOK, director)
	}
}
