package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const accountKey ctxKey = "account"

// protectedMethods require a verified bearer token.
var protectedMethods = map[string]struct{}{
	GetUserMethod: {},
}

func accountFromContext(ctx context.Context) *models.Account {
	a, _ := ctx.Value(accountKey).(*models.Account)
	return a
}

func bearerFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(strings.ToLower(common.AuthorizationHeaderName))
	if len(values) == 0 {
		return ""
	}
	return common.BearerToken(values[0])
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := protectedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	account, err := s.accounts.Verify(ctx, bearerFromMetadata(ctx))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingToken):
			return nil, status.Error(codes.Unauthenticated, common.CodeMissingToken)
		case common.IsUnauthenticated(err):
			return nil, status.Error(codes.Unauthenticated, common.CodeInvalidToken)
		default:
			s.logger.Error(ctx, "token verification failed", "error", err)
			return nil, status.Error(codes.Internal, common.CodeInternal)
		}
	}

	return handler(context.WithValue(ctx, accountKey, account), req)
}
