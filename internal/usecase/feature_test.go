package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebabcase/housing/internal/domain"
)

func TestFeatureUsecase(t *testing.T) {
	ctx := context.Background()
	uc := NewFeatureUsecase(
		newMockCatalog(domain.KindBuilding, map[int64]string{1: "Pool"}),
		newMockCatalog(domain.KindHousingUnit, map[int64]string{}),
	)

	feature, err := uc.Create(ctx, domain.KindHousingUnit, "Balcony")
	require.NoError(t, err)
	assert.Equal(t, "Balcony", feature.Name)

	_, err = uc.Create(ctx, domain.KindBuilding, "Pool")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	features, err := uc.List(ctx, domain.KindBuilding)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "Pool", features[0].Name)

	_, err = uc.List(ctx, domain.KindUnknown)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUsecase(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{users: map[int64]domain.User{}}
	auth := &mockAuth{}
	uc := NewUserUsecase(repo, auth)

	user, err := uc.Create(ctx, UserCreateInput{FirstName: "Ada", EmailAddress: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret", repo.users[user.ID].PasswordHash)

	_, err = uc.Create(ctx, UserCreateInput{EmailAddress: "ada@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	result, err := uc.Authenticate(ctx, "ada@example.com", "secret", "web")
	require.NoError(t, err)
	assert.Equal(t, "TOKEN", result.Token)
	assert.Equal(t, "ada@example.com", auth.email)

	_, err = uc.Authenticate(ctx, "ada@example.com", "wrong", "web")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
