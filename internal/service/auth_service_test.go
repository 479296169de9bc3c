package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibecatcher/event-service/internal/config"
	"github.com/vibecatcher/event-service/internal/domain"
	apperrors "github.com/vibecatcher/event-service/pkg/util"
)

type fakeUserRepo struct {
	byUsername map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("user-%d", len(f.byUsername)+1)
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.byUsername[user.Username]; !ok {
		return pgx.ErrNoRows
	}
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func authTestConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            4,
		},
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(authTestConfig(), newFakeUserRepo())

	user, token, exp, err := svc.Register(context.Background(), "dana", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
	assert.False(t, user.IsAdmin)

	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID)

	logged, loginToken, _, err := svc.Login(context.Background(), "dana", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, loginToken)
}

func TestAuthRegisterTakenUsername(t *testing.T) {
	svc := NewAuthService(authTestConfig(), newFakeUserRepo())

	_, _, _, err := svc.Register(context.Background(), "dana", "hunter22")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "dana", "other")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := NewAuthService(authTestConfig(), newFakeUserRepo())

	_, _, _, err := svc.Register(context.Background(), "dana", "hunter22")
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "dana", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Login(context.Background(), "nobody", "hunter22")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}
