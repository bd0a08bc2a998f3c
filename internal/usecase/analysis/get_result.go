package analysis

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/personal-color/internal/domain"
	analysisdomain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

// GetResult picks the analysis to show on the result page: the requested one
// when the user owns it, otherwise the user's latest.
type GetResult struct {
	repo analysisdomain.Repository
}

func NewGetResult(repo analysisdomain.Repository) *GetResult {
	return &GetResult{repo: repo}
}

func (uc *GetResult) Execute(
	ctx context.Context,
	userID uint,
	id uint,
) (*models.ColorAnalysis, error) {

	if userID == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	if id > 0 {
		a, err := uc.repo.GetByID(ctx, id)
		switch {
		case err == nil && analysisdomain.IsOwnedBy(a, userID):
			return a, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	a, err := uc.repo.Latest(ctx, userID)
	if err != nil {
		return nil, notFoundAsBusiness(err, httperr.CodeAnalysisMissing)
	}
	return a, nil
}
