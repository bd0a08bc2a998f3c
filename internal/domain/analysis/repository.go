package analysis

import (
	"context"

	"github.com/BruksfildServices01/personal-color/internal/models"
)

type Repository interface {
	Create(
		ctx context.Context,
		a *models.ColorAnalysis,
	) error

	GetByID(
		ctx context.Context,
		id uint,
	) (*models.ColorAnalysis, error)

	// Latest returns the most recent analysis of a user.
	Latest(
		ctx context.Context,
		userID uint,
	) (*models.ColorAnalysis, error)

	// ListByUser returns one page ordered by created_at DESC, id DESC
	// together with the total number of analyses of the user.
	ListByUser(
		ctx context.Context,
		userID uint,
		offset int,
		limit int,
	) ([]models.ColorAnalysis, int64, error)

	Delete(
		ctx context.Context,
		id uint,
	) error

	CountByColorType(
		ctx context.Context,
		userID uint,
	) (map[models.ColorType]int64, error)
}
