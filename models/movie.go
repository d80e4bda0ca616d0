package models

import "time"

type Movie struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	ReleaseYear   int        `gorm:"index" json:"release_year"`
	Duration      int        `json:"duration"` // minutes
	Genre         string     `gorm:"size:100" json:"genre"` // "/"-delimited, e.g. "剧情/犯罪"
	Language      string     `gorm:"size:50" json:"language"`
	Country       string     `gorm:"size:50" json:"country"`
	Synopsis      string     `gorm:"type:text" json:"synopsis"`
	AverageRating float64    `gorm:"type:decimal(3,1);not null;default:0" json:"average_rating"`
	RatingCount   int64      `gorm:"not null;default:0" json:"rating_count"`
	CoverURL      *string    `gorm:"size:255" json:"cover_url"`
	Actors        []Actor    `gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE" json:"actors"`
	Directors     []Director `gorm:"many2many:movie_directors;constraint:OnDelete:CASCADE" json:"directors"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
