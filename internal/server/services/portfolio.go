package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

// PortfolioService manages academic and project records. Every mutation
// of an existing record checks that the caller owns it.
type PortfolioService struct {
	repomanager repomanager.RepositoryManager
}

func NewPortfolioService(m repomanager.RepositoryManager) *PortfolioService {
	return &PortfolioService{repomanager: m}
}

func validateAcademic(rec *models.Academic) error {
	return required("degree", rec.Degree, "institution", rec.Institution, "year", rec.Year, "description", rec.Description)
}

func validateProject(rec *models.Project) error {
	return required("title", rec.Title, "description", rec.Description, "link", rec.Link)
}

// owned rejects a mutation by anyone but the record's owner. This is an
// authorization failure, never an authentication one.
func owned(recordOwner, ownerID string) error {
	if recordOwner != ownerID {
		return common.ErrForbidden
	}
	return nil
}

func (s *PortfolioService) ListAcademic(ctx context.Context, ownerID string) ([]*models.Academic, error) {
	return s.repomanager.Academic().ListByOwner(ctx, ownerID)
}

func (s *PortfolioService) CreateAcademic(ctx context.Context, ownerID string, rec *models.Academic) (*models.Academic, error) {
	if err := validateAcademic(rec); err != nil {
		return nil, err
	}
	rec.Owner = ownerID
	return s.repomanager.Academic().Create(ctx, rec)
}

func (s *PortfolioService) UpdateAcademic(ctx context.Context, ownerID string, rec *models.Academic) (*models.Academic, error) {
	if err := validateAcademic(rec); err != nil {
		return nil, err
	}

	var updated *models.Academic
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		repo := m.Academic()
		current, err := repo.Get(ctx, rec.ID)
		if err != nil {
			return err
		}
		if err := owned(current.Owner, ownerID); err != nil {
			return err
		}
		rec.Owner = ownerID
		updated, err = repo.Update(ctx, rec)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating academic entry: %w", err)
	}
	return updated, nil
}

func (s *PortfolioService) DeleteAcademic(ctx context.Context, ownerID, id string) error {
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		repo := m.Academic()
		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := owned(current.Owner, ownerID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("error deleting academic entry: %w", err)
	}
	return nil
}

func (s *PortfolioService) ListProjects(ctx context.Context, ownerID string) ([]*models.Project, error) {
	return s.repomanager.Projects().ListByOwner(ctx, ownerID)
}

func (s *PortfolioService) CreateProject(ctx context.Context, ownerID string, rec *models.Project) (*models.Project, error) {
	if err := validateProject(rec); err != nil {
		return nil, err
	}
	rec.Owner = ownerID
	return s.repomanager.Projects().Create(ctx, rec)
}

func (s *PortfolioService) UpdateProject(ctx context.Context, ownerID string, rec *models.Project) (*models.Project, error) {
	if err := validateProject(rec); err != nil {
		return nil, err
	}

	var updated *models.Project
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		repo := m.Projects()
		current, err := repo.Get(ctx, rec.ID)
		if err != nil {
			return err
		}
		if err := owned(current.Owner, ownerID); err != nil {
			return err
		}
		rec.Owner = ownerID
		updated, err = repo.Update(ctx, rec)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating project: %w", err)
	}
	return updated, nil
}

func (s *PortfolioService) DeleteProject(ctx context.Context, ownerID, id string) error {
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		repo := m.Projects()
		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := owned(current.Owner, ownerID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("error deleting project: %w", err)
	}
	return nil
}
