package models

import "time"

// Rating is unique per (user, movie); writing a second score for the
// same pair updates the existing row.
type Rating struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	MovieID   uint      `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 10" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
