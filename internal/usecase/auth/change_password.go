package auth

import (
	"context"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	"github.com/BruksfildServices01/personal-color/internal/domain/user"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
)

type ChangePassword struct {
	repo  user.Repository
	audit audit.Recorder
}

func NewChangePassword(
	repo user.Repository,
	audit audit.Recorder,
) *ChangePassword {
	return &ChangePassword{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ChangePassword) Execute(
	ctx context.Context,
	userID uint,
	current string,
	next string,
) error {

	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return notFoundAsBusiness(err, httperr.CodeUserNotFound)
	}

	if !user.CheckPassword(current, u.PasswordHash) {
		return httperr.ErrBusiness(httperr.CodeInvalidCreds)
	}
	if err := user.ValidatePassword(next); err != nil {
		return err
	}

	hash, err := user.HashPassword(next)
	if err != nil {
		return err
	}
	u.PasswordHash = hash

	if err := uc.repo.Update(ctx, u); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.UintPtr(u.ID),
		Action:   audit.ActionPasswordChanged,
		Entity:   audit.EntityUser,
		EntityID: audit.UintPtr(u.ID),
	})
	return nil
}
