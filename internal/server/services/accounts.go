// Package services contains server-side business logic: account
// registration and login, token verification, profile edits, owner-scoped
// portfolio records and contact intake.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

// AuthResult is what a successful registration or login hands back.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *models.Account
}

// AccountService issues and verifies session tokens and edits profiles.
type AccountService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.Tokens
	passwords   *auth.Passwords
	pictures    PictureStorage
}

func NewAccountService(m repomanager.RepositoryManager, tokens *auth.Tokens, passwords *auth.Passwords, pictures PictureStorage) *AccountService {
	return &AccountService{
		repomanager: m,
		tokens:      tokens,
		passwords:   passwords,
		pictures:    pictures,
	}
}

// Register creates an account and logs it in. A taken email (in any letter
// case) yields common.ErrDuplicateAccount.
func (s *AccountService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = common.NormalizeEmail(email)
	if err := required("email", email, "password", password); err != nil {
		return nil, err
	}
	if !validEmail(email) {
		return nil, validationErrorf("email is not well-formed")
	}
	if len(password) > auth.MaxPasswordBytes {
		return nil, validationErrorf("password is longer than %d bytes", auth.MaxPasswordBytes)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repomanager.Accounts().Create(ctx, &models.Account{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return s.issue(account)
}

// Login checks credentials. Unknown email and wrong password both return
// common.ErrInvalidCredentials after a full bcrypt comparison.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = common.NormalizeEmail(email)
	if err := required("email", email, "password", password); err != nil {
		return nil, err
	}

	account, err := s.repomanager.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.passwords.CompareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if err := s.passwords.Compare(account.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return s.issue(account)
}

// Verify resolves a raw token to a live account. Tokens whose subject no
// longer exists fail with common.ErrInvalidCredentials.
func (s *AccountService) Verify(ctx context.Context, raw string) (*models.Account, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}

	account, err := s.repomanager.Accounts().GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return account, nil
}

// UpdateProfile applies the non-nil fields of upd to the caller's own
// account.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, upd models.ProfileUpdate) (*models.Account, error) {
	if upd.DisplayName == nil && upd.Bio == nil && upd.Picture == nil {
		return nil, validationErrorf("nothing to update")
	}
	if upd.Picture != nil && *upd.Picture != "" && !ownsPictureKey(accountID, *upd.Picture) {
		return nil, validationErrorf("picture must be a key issued to this account")
	}
	account, err := s.repomanager.Accounts().UpdateProfile(ctx, accountID, upd)
	if err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return account, nil
}

// UpdateBio replaces the biography text.
func (s *AccountService) UpdateBio(ctx context.Context, accountID, bio string) (*models.Account, error) {
	if err := required("bio", bio); err != nil {
		return nil, err
	}
	return s.UpdateProfile(ctx, accountID, models.ProfileUpdate{Bio: &bio})
}

// PictureUploadURL returns a presigned PUT URL and the object key the
// client should later store with UpdateProfile.
func (s *AccountService) PictureUploadURL(ctx context.Context, accountID string) (key string, url string, err error) {
	if s.pictures == nil {
		return "", "", fmt.Errorf("%w: picture storage is not configured", common.ErrorInternal)
	}
	return s.pictures.PresignUpload(ctx, accountID)
}

// PictureDownloadURL returns a presigned GET URL for the account's picture.
func (s *AccountService) PictureDownloadURL(ctx context.Context, account *models.Account) (string, error) {
	if account.Picture == "" {
		return "", common.ErrorNotFound
	}
	if !ownsPictureKey(account.ID, account.Picture) {
		return "", common.ErrForbidden
	}
	if s.pictures == nil {
		return "", fmt.Errorf("%w: picture storage is not configured", common.ErrorInternal)
	}
	return s.pictures.PresignDownload(ctx, account.Picture)
}

func (s *AccountService) issue(account *models.Account) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, Account: account}, nil
}
