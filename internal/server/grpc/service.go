package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "folio.auth.v1.AuthService"

// Full method names, as seen by interceptors.
const (
	RegisterMethod = "/" + ServiceName + "/Register"
	LoginMethod    = "/" + ServiceName + "/Login"
	GetUserMethod  = "/" + ServiceName + "/GetUser"
)

// AuthServiceServer mirrors the HTTP auth routes. Messages are
// google.protobuf.Struct so no generated code is needed.
type AuthServiceServer interface {
	Register(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

func unaryHandler(method string, call func(AuthServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*structpb.Struct))
		})
	}
}

// AuthServiceDesc is registered with grpc.Server.RegisterService.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(RegisterMethod, AuthServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(LoginMethod, AuthServiceServer.Login)},
		{MethodName: "GetUser", Handler: unaryHandler(GetUserMethod, AuthServiceServer.GetUser)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "folio/auth/v1/auth.proto",
}
