package analysis

import (
	"context"

	domain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

type GetAnalysis struct {
	repo domain.Repository
}

func NewGetAnalysis(repo domain.Repository) *GetAnalysis {
	return &GetAnalysis{repo: repo}
}

func (uc *GetAnalysis) Execute(
	ctx context.Context,
	userID uint,
	id uint,
) (*models.ColorAnalysis, error) {

	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAsBusiness(err, httperr.CodeAnalysisMissing)
	}
	if !domain.IsOwnedBy(a, userID) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return a, nil
}
