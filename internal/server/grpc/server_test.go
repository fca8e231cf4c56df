package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/folio/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startBufServer(t *testing.T) *grpc.ClientConn {
	t.Helper()

	rm := repomanager.NewMemoryRepositoryManager()
	accounts := services.NewAccountService(rm, auth.NewTokens([]byte("k"), time.Hour), auth.NewPasswords(bcrypt.MinCost), nil)
	s := NewGRPCServer("bufnet", logging.Nop(), accounts)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}

func call(ctx context.Context, conn *grpc.ClientConn, method string, in map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := conn.Invoke(ctx, method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func TestAuthService_Scenario(t *testing.T) {
	conn := startBufServer(t)
	ctx := context.Background()

	reg, err := call(ctx, conn, RegisterMethod, map[string]any{"email": "a@x.com", "password": "p1"})
	require.NoError(t, err)
	id := reg.GetFields()["account"].GetStructValue().GetFields()["id"].GetStringValue()
	require.NotEmpty(t, id)

	_, err = call(ctx, conn, RegisterMethod, map[string]any{"email": "A@x.com", "password": "p2"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = call(ctx, conn, LoginMethod, map[string]any{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.CodeInvalidCredentials, status.Convert(err).Message())

	login, err := call(ctx, conn, LoginMethod, map[string]any{"email": "a@x.com", "password": "p1"})
	require.NoError(t, err)
	token := login.GetFields()["token"].GetStringValue()

	authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	who, err := call(authed, conn, GetUserMethod, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, id, who.GetFields()["id"].GetStringValue())

	_, err = call(ctx, conn, GetUserMethod, map[string]any{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.CodeMissingToken, status.Convert(err).Message())

	bad := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer nope")
	_, err = call(bad, conn, GetUserMethod, map[string]any{})
	assert.Equal(t, common.CodeInvalidToken, status.Convert(err).Message())
}

func TestAuthService_Validation(t *testing.T) {
	conn := startBufServer(t)

	_, err := call(context.Background(), conn, RegisterMethod, map[string]any{"email": "", "password": ""})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHealth_Serving(t *testing.T) {
	conn := startBufServer(t)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), nil)
	require.Error(t, srv.Run(context.Background()))
}
