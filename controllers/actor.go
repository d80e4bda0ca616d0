package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/L-1ngg/movie-system/models"
	"github.com/L-1ngg/movie-system/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type actorCreateInput struct {
	Name        string  `json:"name" binding:"required"`
	Gender      string  `json:"gender" binding:"omitempty,oneof=male female other"`
	BirthDate   *string `json:"birth_date"` // "2006-01-02"
	Nationality *string `json:"nationality"`
}

type actorUpdateInput struct {
	Name        *string `json:"name"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female other"`
	BirthDate   *string `json:"birth_date"`
	Nationality *string `json:"nationality"`
}

func parseBirthDate(s string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListActors handles GET /actors with skip/limit pagination.
func ListActors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit < 0 || skip < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination"})
			return
		}

		actors := []models.Actor{}
		if err := db.Order("id ASC").Offset(skip).Limit(limit).Find(&actors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch actors"})
			return
		}
		c.JSON(http.StatusOK, actors)
	}
}

func GetActor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var actor models.Actor
		if err := db.First(&actor, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Actor not found"})
			return
		}
		c.JSON(http.StatusOK, actor)
	}
}

// CreateActor handles POST /actors (admin).
func CreateActor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input actorCreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actor := models.Actor{
			Name:        input.Name,
			Gender:      input.Gender,
			Nationality: input.Nationality,
		}
		if actor.Gender == "" {
			actor.Gender = "other"
		}
		if input.BirthDate != nil {
			birthDate, err := parseBirthDate(*input.BirthDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
				return
			}
			actor.BirthDate = birthDate
		}

		if err := db.Create(&actor).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create actor"})
			return
		}
		c.JSON(http.StatusCreated, actor)
	}
}

// UpdateActor handles PUT /actors/:id (admin), partial update.
func UpdateActor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var actor models.Actor
		if err := db.First(&actor, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Actor not found"})
			return
		}

		var input actorUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Name != nil {
			actor.Name = *input.Name
		}
		if input.Gender != nil {
			actor.Gender = *input.Gender
		}
		if input.BirthDate != nil {
			birthDate, err := parseBirthDate(*input.BirthDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
				return
			}
			actor.BirthDate = birthDate
		}
		if input.Nationality != nil {
			actor.Nationality = input.Nationality
		}

		if err := db.Save(&actor).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update actor"})
			return
		}
		c.JSON(http.StatusOK, actor)
	}
}

// DeleteActor handles DELETE /actors/:id (admin). Join rows pointing at
// the actor are removed in the same transaction.
func DeleteActor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var actor models.Actor
		if err := db.First(&actor, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Actor not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM movie_actors WHERE actor_id = ?", actor.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&actor).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete actor"})
			return
		}
		c.JSON(http.StatusOK, actor)
	}
}

// UploadActorPhoto handles POST /actors/:id/photo (admin, multipart).
func UploadActorPhoto(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var actor models.Actor
		if err := db.First(&actor, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Actor not found"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		photoURL, err := utils.SaveImage(c, file, uploadDir, "actors")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		oldURL := ""
		if actor.PhotoURL != nil {
			oldURL = *actor.PhotoURL
		}

		if err := db.Model(&actor).Update("photo_url", photoURL).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update photo"})
			return
		}

		utils.RemoveImage(uploadDir, oldURL)
		c.JSON(http.StatusOK, actor)
	}
}
