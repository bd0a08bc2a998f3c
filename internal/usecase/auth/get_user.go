package auth

import (
	"context"

	"github.com/BruksfildServices01/personal-color/internal/domain/user"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

type GetUser struct {
	repo user.Repository
}

func NewGetUser(repo user.Repository) *GetUser {
	return &GetUser{repo: repo}
}

func (uc *GetUser) Execute(ctx context.Context, userID uint) (*models.User, error) {
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAsBusiness(err, httperr.CodeUserNotFound)
	}
	return u, nil
}
