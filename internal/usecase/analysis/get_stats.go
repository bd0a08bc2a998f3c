package analysis

import (
	"context"

	domain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

type CategoryCount struct {
	ColorType   models.ColorType `json:"color_type"`
	DisplayName string           `json:"display_name"`
	Count       int64            `json:"count"`
}

type Stats struct {
	Total      int64           `json:"total"`
	Categories []CategoryCount `json:"categories"`
}

type GetStats struct {
	repo domain.Repository
}

func NewGetStats(repo domain.Repository) *GetStats {
	return &GetStats{repo: repo}
}

// Execute counts the user's analyses per category, in catalogue order.
func (uc *GetStats) Execute(ctx context.Context, userID uint) (*Stats, error) {
	counts, err := uc.repo.CountByColorType(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Categories: make([]CategoryCount, 0, len(counts))}
	for _, ct := range domain.ColorTypes() {
		n := counts[ct]
		stats.Total += n
		stats.Categories = append(stats.Categories, CategoryCount{
			ColorType:   ct,
			DisplayName: domain.DisplayName(ct),
			Count:       n,
		})
	}
	return stats, nil
}
