package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

// ContactService accepts public contact-form submissions.
type ContactService struct {
	repomanager repomanager.RepositoryManager
}

func NewContactService(m repomanager.RepositoryManager) *ContactService {
	return &ContactService{repomanager: m}
}

func (s *ContactService) Submit(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = common.NormalizeEmail(msg.Email)
	if err := required("name", msg.Name, "email", msg.Email, "message", msg.Body); err != nil {
		return nil, err
	}
	if !validEmail(msg.Email) {
		return nil, validationErrorf("email is not well-formed")
	}
	return s.repomanager.Messages().Create(ctx, msg)
}

// List returns every submission, newest first.
func (s *ContactService) List(ctx context.Context) ([]*models.Message, error) {
	return s.repomanager.Messages().List(ctx)
}
