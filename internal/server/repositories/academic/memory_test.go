package academic

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, &models.Academic{Owner: "o1", Degree: "BSc", Institution: "MIT", Year: "2020", Description: "cs"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Academic{Owner: "o2", Degree: "MSc"})
	require.NoError(t, err)

	list, err := repo.ListByOwner(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	a.Degree = "PhD"
	updated, err := repo.Update(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "PhD", updated.Degree)
	assert.Equal(t, "o1", updated.Owner)

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.Get(ctx, a.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, repo.Delete(ctx, a.ID), common.ErrorNotFound)
}
