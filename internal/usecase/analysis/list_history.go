package analysis

import (
	"context"

	domain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

type HistoryPage struct {
	Items      []models.ColorAnalysis
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

func (p HistoryPage) HasPrevious() bool {
	return p.Page > 0
}

func (p HistoryPage) HasNext() bool {
	return p.Page+1 < p.TotalPages
}

type ListHistory struct {
	repo domain.Repository
}

func NewListHistory(repo domain.Repository) *ListHistory {
	return &ListHistory{repo: repo}
}

// Execute returns one 0-based page of the user's analyses, newest first.
func (uc *ListHistory) Execute(
	ctx context.Context,
	userID uint,
	page int,
	size int,
) (*HistoryPage, error) {

	if userID == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	page, size = domain.NormalizePage(page, size)

	items, total, err := uc.repo.ListByUser(ctx, userID, page*size, size)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ColorAnalysis{}
	}

	return &HistoryPage{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: domain.TotalPages(total, size),
	}, nil
}
