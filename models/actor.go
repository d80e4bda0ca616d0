package models

import "time"

type Actor struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null;index" json:"name"`
	Gender      string     `gorm:"size:10;default:other" json:"gender"` // male, female or other
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date"`
	Nationality *string    `gorm:"size:50" json:"nationality"`
	PhotoURL    *string    `gorm:"size:255" json:"photo_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
