package auth

import (
	"context"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	"github.com/BruksfildServices01/personal-color/internal/domain/user"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
)

// Deactivate disables an account. Its analyses stay in place and the user
// can no longer log in.
type Deactivate struct {
	repo  user.Repository
	audit audit.Recorder
}

func NewDeactivate(
	repo user.Repository,
	audit audit.Recorder,
) *Deactivate {
	return &Deactivate{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Deactivate) Execute(ctx context.Context, userID uint) error {
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return notFoundAsBusiness(err, httperr.CodeUserNotFound)
	}
	if !u.Active {
		return nil
	}

	u.Active = false
	if err := uc.repo.Update(ctx, u); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.UintPtr(u.ID),
		Action:   audit.ActionUserDeactivated,
		Entity:   audit.EntityUser,
		EntityID: audit.UintPtr(u.ID),
	})
	return nil
}
