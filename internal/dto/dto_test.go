package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/personal-color/internal/models"
)

func TestNewAnalysisDTO(t *testing.T) {
	thumb := "t_1.webp"
	a := &models.ColorAnalysis{
		ID:                3,
		StoredFileName:    "abc_1.png",
		ThumbnailFileName: &thumb,
		ColorType:         models.ColorTypeWinterCool,
		Confidence:        0.876,
	}

	d := NewAnalysisDTO(a)
	assert.Equal(t, "Winter Cool", d.DisplayName)
	assert.Equal(t, 87, d.ConfidencePercent)
	assert.Equal(t, "/uploads/abc_1.png", d.ImageURL)
	assert.Equal(t, "/uploads/t_1.webp", d.ThumbnailURL)
	assert.NotNil(t, d.DominantColors)
}

func TestNewAnalysisDTOWithoutThumbnail(t *testing.T) {
	d := NewAnalysisDTO(&models.ColorAnalysis{StoredFileName: "x.jpg"})
	assert.Empty(t, d.ThumbnailURL)
}
