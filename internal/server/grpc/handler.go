package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func stringField(in *structpb.Struct, name string) string {
	if in == nil {
		return ""
	}
	return in.GetFields()[name].GetStringValue()
}

func accountValue(a *models.Account) map[string]any {
	p := a.Projection()
	return map[string]any{
		"id":           p.ID,
		"email":        p.Email,
		"display_name": p.DisplayName,
		"bio":          p.Bio,
		"picture":      p.Picture,
		"created_at":   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func authResult(res *services.AuthResult) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"token":      res.Token,
		"expires_at": res.ExpiresAt.UTC().Format(time.RFC3339),
		"account":    accountValue(res.Account),
	})
}

// toStatus maps service errors to gRPC status codes. The message is the
// same reason code the HTTP transport uses.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, common.CodeValidation)
	case errors.Is(err, common.ErrDuplicateAccount):
		return status.Error(codes.AlreadyExists, common.CodeDuplicateAccount)
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.CodeInvalidCredentials)
	default:
		return status.Error(codes.Internal, common.CodeInternal)
	}
}

func (s *GRPCServer) Register(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.accounts.Register(ctx, stringField(in, "email"), stringField(in, "password"))
	if err != nil {
		st := toStatus(err)
		if status.Code(st) == codes.Internal {
			s.logger.Error(ctx, "register failed", "error", err)
		}
		return nil, st
	}

	s.logger.Info(ctx, "account registered", "account_id", res.Account.ID)
	return authResult(res)
}

func (s *GRPCServer) Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.accounts.Login(ctx, stringField(in, "email"), stringField(in, "password"))
	if err != nil {
		st := toStatus(err)
		if status.Code(st) == codes.Internal {
			s.logger.Error(ctx, "login failed", "error", err)
		}
		return nil, st
	}
	return authResult(res)
}

func (s *GRPCServer) GetUser(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	account := accountFromContext(ctx)
	if account == nil {
		return nil, status.Error(codes.Unauthenticated, common.CodeMissingToken)
	}
	return structpb.NewStruct(accountValue(account))
}
