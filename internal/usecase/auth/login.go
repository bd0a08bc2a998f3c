package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	"github.com/BruksfildServices01/personal-color/internal/domain"
	"github.com/BruksfildServices01/personal-color/internal/domain/user"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

type Login struct {
	repo  user.Repository
	audit audit.Recorder
	now   func() time.Time
}

func NewLogin(
	repo user.Repository,
	audit audit.Recorder,
) *Login {
	return &Login{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute authenticates by email or username. Every failure is reported as
// invalid_credentials so callers cannot tell which part was wrong.
func (uc *Login) Execute(
	ctx context.Context,
	identity string,
	password string,
) (*models.User, error) {

	identity = strings.TrimSpace(identity)
	if identity == "" || password == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCreds)
	}

	u, err := uc.lookup(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidCreds)
		}
		return nil, err
	}

	if !user.CheckPassword(password, u.PasswordHash) || !u.Active {
		slog.InfoContext(ctx, "login_rejected", "user_id", u.ID)
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCreds)
	}

	at := uc.now().UTC()
	if err := uc.repo.TouchLastLogin(ctx, u.ID, at); err != nil {
		slog.WarnContext(ctx, "last_login_update_failed", "user_id", u.ID, "err", err)
	} else {
		u.LastLoginAt = &at
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.UintPtr(u.ID),
		Action:   audit.ActionUserLogin,
		Entity:   audit.EntityUser,
		EntityID: audit.UintPtr(u.ID),
	})

	return u, nil
}

func (uc *Login) lookup(ctx context.Context, identity string) (*models.User, error) {
	if strings.Contains(identity, "@") {
		u, err := uc.repo.GetByEmail(ctx, user.NormalizeEmail(identity))
		if err == nil || !errors.Is(err, domain.ErrNotFound) {
			return u, err
		}
	}
	return uc.repo.GetByUsername(ctx, identity)
}
