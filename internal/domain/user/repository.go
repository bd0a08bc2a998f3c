package user

import (
	"context"
	"time"

	"github.com/BruksfildServices01/personal-color/internal/models"
)

type Repository interface {
	Create(
		ctx context.Context,
		u *models.User,
	) error

	GetByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	GetByUsername(
		ctx context.Context,
		username string,
	) (*models.User, error)

	ExistsByEmail(
		ctx context.Context,
		email string,
	) (bool, error)

	ExistsByUsername(
		ctx context.Context,
		username string,
	) (bool, error)

	Update(
		ctx context.Context,
		u *models.User,
	) error

	TouchLastLogin(
		ctx context.Context,
		id uint,
		at time.Time,
	) error
}
