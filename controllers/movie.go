package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/L-1ngg/movie-system/store"
	"github.com/L-1ngg/movie-system/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultPageSize = 100

// ListMovies handles GET /movies with the combined
// search/filter/sort/pagination query parameters.
func ListMovies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.MovieFilter{
			Search: c.Query("search"),
			Genre:  c.Query("genre"),
			SortBy: c.Query("sort_by"),
			Limit:  defaultPageSize,
		}

		if s := c.Query("year"); s != "" {
			year, err := strconv.Atoi(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
				return
			}
			filter.Year = year
		}

		if s := c.Query("min_rating"); s != "" {
			minRating, err := strconv.ParseFloat(s, 64)
			if err != nil || minRating < 0 || minRating > 10 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "min_rating must be between 0 and 10"})
				return
			}
			filter.MinRating = &minRating
		}

		if s := c.Query("skip"); s != "" {
			skip, err := strconv.Atoi(s)
			if err != nil || skip < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "skip must be a non-negative integer"})
				return
			}
			filter.Skip = skip
		}

		if s := c.Query("limit"); s != "" {
			limit, err := strconv.Atoi(s)
			if err != nil || limit < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			filter.Limit = limit
		}

		movies, err := store.SearchMovies(db, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movies"})
			return
		}

		c.JSON(http.StatusOK, movies)
	}
}

// GetMovie handles GET /movies/:id.
func GetMovie(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
			return
		}

		movie, err := store.GetMovie(db, id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}

		c.JSON(http.StatusOK, movie)
	}
}

// CreateMovie handles POST /movies (admin).
func CreateMovie(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input store.MovieCreate
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		movie, err := store.CreateMovie(db, input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create movie"})
			return
		}

		c.JSON(http.StatusCreated, movie)
	}
}

// UpdateMovie handles PUT /movies/:id (admin). Omitted fields and ID
// lists are left untouched; an explicit empty ID list clears the set.
func UpdateMovie(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
			return
		}

		var input store.MovieUpdate
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		movie, err := store.UpdateMovie(db, id, input)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update movie"})
			return
		}

		c.JSON(http.StatusOK, movie)
	}
}

// DeleteMovie handles DELETE /movies/:id (admin) and returns the
// deleted record.
func DeleteMovie(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
			return
		}

		movie, err := store.DeleteMovie(db, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete movie"})
			return
		}

		c.JSON(http.StatusOK, movie)
	}
}

// UploadMovieCover handles POST /movies/:id/cover (admin, multipart).
// The old cover file, if any, is deleted after the new URL is stored;
// a failed delete only logs.
func UploadMovieCover(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
			return
		}

		movie, err := store.GetMovie(db, id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		coverURL, err := utils.SaveImage(c, file, uploadDir, "covers")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		oldURL := ""
		if movie.CoverURL != nil {
			oldURL = *movie.CoverURL
		}

		updated, err := store.UpdateMovieCover(db, id, coverURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cover"})
			return
		}

		utils.RemoveImage(uploadDir, oldURL)
		c.JSON(http.StatusOK, updated)
	}
}

// ListGenres handles GET /movies/genres/.
func ListGenres(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		genres, err := store.DistinctGenres(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch genres"})
			return
		}
		c.JSON(http.StatusOK, genres)
	}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
