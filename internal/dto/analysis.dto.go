package dto

import (
	"net/url"
	"time"

	domain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

const UploadsPath = "/uploads/"

type AnalysisDTO struct {
	ID                uint             `json:"id"`
	ColorType         models.ColorType `json:"color_type"`
	DisplayName       string           `json:"display_name"`
	Description       string           `json:"description"`
	DominantColors    []string         `json:"dominant_colors"`
	Confidence        float64          `json:"confidence"`
	ConfidencePercent int              `json:"confidence_percent"`
	OriginalFileName  string           `json:"original_file_name"`
	ContentType       string           `json:"content_type"`
	FileSize          int64            `json:"file_size"`
	Width             int              `json:"width"`
	Height            int              `json:"height"`
	ImageURL          string           `json:"image_url"`
	ThumbnailURL      string           `json:"thumbnail_url,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

func FileURL(name string) string {
	return UploadsPath + url.PathEscape(name)
}

func NewAnalysisDTO(a *models.ColorAnalysis) AnalysisDTO {
	colors := []string(a.DominantColors)
	if colors == nil {
		colors = []string{}
	}

	out := AnalysisDTO{
		ID:                a.ID,
		ColorType:         a.ColorType,
		DisplayName:       domain.DisplayName(a.ColorType),
		Description:       a.Description,
		DominantColors:    colors,
		Confidence:        a.Confidence,
		ConfidencePercent: int(a.Confidence * 100),
		OriginalFileName:  a.OriginalFileName,
		ContentType:       a.ContentType,
		FileSize:          a.FileSize,
		Width:             a.Width,
		Height:            a.Height,
		ImageURL:          FileURL(a.StoredFileName),
		CreatedAt:         a.CreatedAt,
	}
	if a.ThumbnailFileName != nil {
		out.ThumbnailURL = FileURL(*a.ThumbnailFileName)
	}
	return out
}

func NewAnalysisDTOs(items []models.ColorAnalysis) []AnalysisDTO {
	out := make([]AnalysisDTO, 0, len(items))
	for i := range items {
		out = append(out, NewAnalysisDTO(&items[i]))
	}
	return out
}
