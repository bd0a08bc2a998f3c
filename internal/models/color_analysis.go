package models

import (
	"time"

	"gorm.io/datatypes"
)

type ColorType string

const (
	ColorTypeSpringWarm ColorType = "SPRING_WARM"
	ColorTypeSummerCool ColorType = "SUMMER_COOL"
	ColorTypeAutumnWarm ColorType = "AUTUMN_WARM"
	ColorTypeWinterCool ColorType = "WINTER_COOL"
)

type ColorAnalysis struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index:idx_color_analyses_user_created,priority:1" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	OriginalFileName  string  `gorm:"size:255;not null" json:"original_file_name"`
	StoredFileName    string  `gorm:"size:255;uniqueIndex;not null" json:"stored_file_name"`
	ThumbnailFileName *string `gorm:"size:255" json:"thumbnail_file_name"`
	ContentType       string  `gorm:"size:50" json:"content_type"`
	FileSize          int64   `json:"file_size"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`

	ColorType      ColorType                   `gorm:"size:20;not null" json:"color_type"`
	Description    string                      `gorm:"size:1000" json:"description"`
	DominantColors datatypes.JSONSlice[string] `json:"dominant_colors"`
	Confidence     float64                     `json:"confidence"`

	CreatedAt time.Time `gorm:"index:idx_color_analyses_user_created,priority:2" json:"created_at"`
}
