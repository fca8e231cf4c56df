package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcademic_OwnerLifecycle(t *testing.T) {
	svc := NewPortfolioService(repomanager.NewMemoryRepositoryManager())
	ctx := context.Background()

	_, err := svc.CreateAcademic(ctx, "alice", &models.Academic{Degree: "BSc"})
	require.ErrorIs(t, err, common.ErrValidation)

	rec, err := svc.CreateAcademic(ctx, "alice", &models.Academic{
		Owner: "mallory", Degree: "BSc", Institution: "MIT", Year: "2020", Description: "cs",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Owner, "owner always comes from the caller")

	list, err := svc.ListAcademic(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = svc.ListAcademic(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)

	upd := *rec
	upd.Degree = "MSc"
	_, err = svc.UpdateAcademic(ctx, "bob", &upd)
	require.ErrorIs(t, err, common.ErrForbidden)

	got, err := svc.UpdateAcademic(ctx, "alice", &upd)
	require.NoError(t, err)
	assert.Equal(t, "MSc", got.Degree)

	require.ErrorIs(t, svc.DeleteAcademic(ctx, "bob", rec.ID), common.ErrForbidden)
	require.NoError(t, svc.DeleteAcademic(ctx, "alice", rec.ID))
	require.ErrorIs(t, svc.DeleteAcademic(ctx, "alice", rec.ID), common.ErrorNotFound)

	missing := upd
	missing.ID = "nope"
	_, err = svc.UpdateAcademic(ctx, "alice", &missing)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProjects_OwnerLifecycle(t *testing.T) {
	svc := NewPortfolioService(repomanager.NewMemoryRepositoryManager())
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, "alice", &models.Project{Title: "x"})
	require.ErrorIs(t, err, common.ErrValidation)

	rec, err := svc.CreateProject(ctx, "alice", &models.Project{
		Title: "Folio", Description: "site", Link: "https://x", Technologies: []string{"go"},
	})
	require.NoError(t, err)

	upd := *rec
	upd.Technologies = []string{"go", "postgres"}
	_, err = svc.UpdateProject(ctx, "bob", &upd)
	require.ErrorIs(t, err, common.ErrForbidden)

	got, err := svc.UpdateProject(ctx, "alice", &upd)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgres"}, got.Technologies)

	list, err := svc.ListProjects(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.ErrorIs(t, svc.DeleteProject(ctx, "bob", rec.ID), common.ErrForbidden)
	require.NoError(t, svc.DeleteProject(ctx, "alice", rec.ID))
	require.ErrorIs(t, svc.DeleteProject(ctx, "alice", rec.ID), common.ErrorNotFound)
}
