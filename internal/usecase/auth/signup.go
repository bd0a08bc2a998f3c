package auth

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	"github.com/BruksfildServices01/personal-color/internal/domain"
	"github.com/BruksfildServices01/personal-color/internal/domain/user"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/models"
	"github.com/BruksfildServices01/personal-color/internal/validators"
)

// Column limits of the users table, in characters.
const (
	maxNameLen     = 100
	maxUsernameLen = 100
	maxEmailLen    = 100
)

// ======================================================
// INPUT
// ======================================================

type SignupInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

// ======================================================
// USE CASE
// ======================================================

type Signup struct {
	repo        user.Repository
	audit       audit.Recorder
	domainCheck func(email string) bool
}

// NewSignup builds the signup use case. When checkDomain is set the email
// domain must resolve in DNS.
func NewSignup(
	repo user.Repository,
	audit audit.Recorder,
	checkDomain bool,
) *Signup {
	uc := &Signup{
		repo:  repo,
		audit: audit,
	}
	if checkDomain {
		uc.domainCheck = validators.IsEmailDomainValid
	}
	return uc
}

func (uc *Signup) Execute(
	ctx context.Context,
	in SignupInput,
) (*models.User, error) {

	// --------------------------------------------------
	// 1. Normalization / validation
	// --------------------------------------------------
	email := user.NormalizeEmail(in.Email)
	if utf8.RuneCountInString(email) > maxEmailLen || !validators.IsEmailSyntaxValid(email) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidEmail)
	}
	if uc.domainCheck != nil && !uc.domainCheck(email) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidEmail)
	}

	if err := user.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return nil, httperr.ErrBusiness(httperr.CodeNameRequired)
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = email
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidUsername)
	}

	// --------------------------------------------------
	// 2. Uniqueness
	// --------------------------------------------------
	taken, err := uc.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness(httperr.CodeEmailTaken)
	}

	taken, err = uc.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness(httperr.CodeUsernameTaken)
	}

	// --------------------------------------------------
	// 3. Creation
	// --------------------------------------------------
	hash, err := user.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         models.RoleUser,
		Active:       true,
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrBusiness(httperr.CodeEmailTaken)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.UintPtr(u.ID),
		Action:   audit.ActionUserSignup,
		Entity:   audit.EntityUser,
		EntityID: audit.UintPtr(u.ID),
	})

	return u, nil
}
