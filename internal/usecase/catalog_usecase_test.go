package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-pro/internal/domain/skillgap"
)

func TestCatalogUsecase(t *testing.T) {
	uc := NewCatalogUsecase(defaultProvider())
	ctx := context.Background()

	dims, err := uc.ListDimensions(ctx)
	require.NoError(t, err)
	require.Len(t, dims, 7)
	assert.Equal(t, "Python", dims[0].Name)

	roles, err := uc.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 4)
	assert.True(t, roles[0].Default)
	assert.False(t, roles[1].Default)
	assert.Equal(t, RoleLevel{Skill: "Machine Learning", Level: 90}, roles[1].Levels[1])

	info, err := uc.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, skillgap.MustDefaultCatalog().Fingerprint(), info.Fingerprint)
	assert.Equal(t, "embedded", info.Source)
}

func TestCatalogUsecase_Unavailable(t *testing.T) {
	uc := NewCatalogUsecase(mockProvider{err: errors.New("down")})

	_, err := uc.ListRoles(context.Background())
	assert.True(t, errors.Is(err, ErrCatalogUnavailable))
}
