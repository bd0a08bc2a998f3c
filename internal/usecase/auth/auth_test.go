package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	"github.com/BruksfildServices01/personal-color/internal/domain/user"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/infra/repository"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

type touchFailingRepo struct {
	user.Repository
}

func (touchFailingRepo) TouchLastLogin(context.Context, uint, time.Time) error {
	return errors.New("db unavailable")
}

func signup(t *testing.T, repo user.Repository, email, username, password string) *models.User {
	t.Helper()
	u, err := NewSignup(repo, audit.Nop{}, false).Execute(context.Background(), SignupInput{
		Email: email, Username: username, Password: password, Name: "Test User",
	})
	require.NoError(t, err)
	return u
}

func TestSignupCreatesUser(t *testing.T) {
	repo := repository.NewMemoryStore().Users()
	u := signup(t, repo, "  Ana@Example.com ", "", "secret1")

	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "ana@example.com", u.Username)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.True(t, u.Active)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, user.CheckPassword("secret1", u.PasswordHash))
}

func TestSignupValidation(t *testing.T) {
	repo := repository.NewMemoryStore().Users()
	signup(t, repo, "ana@example.com", "ana", "secret1")
	uc := NewSignup(repo, audit.Nop{}, false)

	cases := []struct {
		name string
		in   SignupInput
		code string
	}{
		{"bad email", SignupInput{Email: "nope", Password: "secret1", Name: "X"}, httperr.CodeInvalidEmail},
		{"short password", SignupInput{Email: "b@example.com", Password: "123", Name: "X"}, httperr.CodeWeakPassword},
		{"password over 72 bytes", SignupInput{Email: "b@example.com", Password: strings.Repeat("p", 80), Name: "X"}, httperr.CodePasswordTooLong},
		{"long username", SignupInput{Email: "b@example.com", Username: strings.Repeat("u", 101), Password: "secret1", Name: "X"}, httperr.CodeInvalidUsername},
		{"long email", SignupInput{Email: strings.Repeat("e", 95) + "@example.com", Password: "secret1", Name: "X"}, httperr.CodeInvalidEmail},
		{"no name", SignupInput{Email: "b@example.com", Password: "secret1", Name: "  "}, httperr.CodeNameRequired},
		{"email taken", SignupInput{Email: "ANA@example.com", Password: "secret1", Name: "X"}, httperr.CodeEmailTaken},
		{"username taken", SignupInput{Email: "c@example.com", Username: "ana", Password: "secret1", Name: "X"}, httperr.CodeUsernameTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}

func TestSignupCountsUsernameInCharacters(t *testing.T) {
	repo := repository.NewMemoryStore().Users()
	name := strings.Repeat("김", 100)

	u := signup(t, repo, "kim@example.com", name, "secret1")
	assert.Equal(t, name, u.Username)
}

func TestLoginByEmailOrUsername(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStore().Users()
	created := signup(t, repo, "ana@example.com", "ana", "secret1")
	uc := NewLogin(repo, audit.Nop{})

	u, err := uc.Execute(ctx, "ANA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	require.NotNil(t, u.LastLoginAt)

	u, err = uc.Execute(ctx, "ana", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStore().Users()
	signup(t, repo, "ana@example.com", "ana", "secret1")
	uc := NewLogin(repo, audit.Nop{})

	for _, tc := range []struct{ identity, password string }{
		{"ana@example.com", "wrong-pass"},
		{"ghost@example.com", "secret1"},
		{"ana", ""},
		{"", "secret1"},
	} {
		u, err := uc.Execute(ctx, tc.identity, tc.password)
		assert.Nil(t, u)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCreds), "%s/%s: %v", tc.identity, tc.password, err)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStore().Users()
	u := signup(t, repo, "ana@example.com", "ana", "secret1")
	require.NoError(t, NewDeactivate(repo, audit.Nop{}).Execute(ctx, u.ID))

	_, err := NewLogin(repo, audit.Nop{}).Execute(ctx, "ana", "secret1")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCreds))
}

func TestLoginSurvivesLastLoginFailure(t *testing.T) {
	repo := repository.NewMemoryStore().Users()
	signup(t, repo, "ana@example.com", "ana", "secret1")

	u, err := NewLogin(touchFailingRepo{repo}, audit.Nop{}).Execute(context.Background(), "ana", "secret1")
	require.NoError(t, err)
	assert.Nil(t, u.LastLoginAt)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStore().Users()
	u := signup(t, repo, "ana@example.com", "ana", "secret1")
	uc := NewChangePassword(repo, audit.Nop{})

	err := uc.Execute(ctx, u.ID, "wrong", "another1")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCreds))

	err = uc.Execute(ctx, u.ID, "secret1", "123")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeWeakPassword))

	err = uc.Execute(ctx, u.ID, "secret1", strings.Repeat("p", 80))
	assert.True(t, httperr.IsBusiness(err, httperr.CodePasswordTooLong))

	require.NoError(t, uc.Execute(ctx, u.ID, "secret1", "another1"))

	login := NewLogin(repo, audit.Nop{})
	_, err = login.Execute(ctx, "ana", "secret1")
	assert.Error(t, err)
	_, err = login.Execute(ctx, "ana", "another1")
	assert.NoError(t, err)

	err = uc.Execute(ctx, 999, "secret1", "another1")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUserNotFound))
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStore().Users()
	u := signup(t, repo, "ana@example.com", "ana", "secret1")

	got, err := NewGetUser(repo).Execute(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)

	_, err = NewGetUser(repo).Execute(ctx, 77)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUserNotFound))
}
