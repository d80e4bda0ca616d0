package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/L-1ngg/movie-system/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaveImage stores an uploaded file under <uploadDir>/images/<kind>
// with a random name and returns the public /static URL for it.
func SaveImage(c *gin.Context, file *multipart.FileHeader, uploadDir, kind string) (string, error) {
	dir := filepath.Join(uploadDir, "images", kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/static/images/" + kind + "/" + name, nil
}

// RemoveImage deletes the file behind a previously stored /static URL.
// Failures are logged and swallowed so a stale file never fails the
// request that replaced it.
func RemoveImage(uploadDir, staticURL string) {
	if staticURL == "" {
		return
	}
	rel := strings.TrimPrefix(staticURL, "/static/")
	if rel == staticURL {
		logger.Warn("not a static URL, skipping delete: %s", staticURL)
		return
	}
	path := filepath.Join(uploadDir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to delete old file %s: %v", path, err)
	}
}
