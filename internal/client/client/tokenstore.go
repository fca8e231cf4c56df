package client

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/folio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/folio/internal/common"
)

const sessionTokenKey = "session_token"

// TokenStore keeps the session token in the metadata table.
type TokenStore struct {
	repo metadata.Repository
}

func NewTokenStore(repo metadata.Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Load returns "" when no token is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, sessionTokenKey)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	return s.repo.Set(ctx, sessionTokenKey, []byte(token))
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, sessionTokenKey)
}
