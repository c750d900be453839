// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// SessionServiceName is the fully qualified gRPC service name.
const SessionServiceName = "buttonstory.v1.SessionService"

// SessionServiceServer is the server API of the session service. Requests
// and responses are free-form structs keyed by the Field constants.
type SessionServiceServer interface {
	Press(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Jump(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GrantModifier(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Purchase(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ChooseBranch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetPreferences(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(SessionServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + SessionServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SessionServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(SessionServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// SessionServiceDesc describes the session service for grpc.Server.RegisterService.
var SessionServiceDesc = grpc.ServiceDesc{
	ServiceName: SessionServiceName,
	HandlerType: (*SessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Press", SessionServiceServer.Press),
		unaryHandler("Jump", SessionServiceServer.Jump),
		unaryHandler("Reset", SessionServiceServer.Reset),
		unaryHandler("GrantModifier", SessionServiceServer.GrantModifier),
		unaryHandler("Purchase", SessionServiceServer.Purchase),
		unaryHandler("ChooseBranch", SessionServiceServer.ChooseBranch),
		unaryHandler("SetPreferences", SessionServiceServer.SetPreferences),
		unaryHandler("GetState", SessionServiceServer.GetState),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "buttonstory/v1/session.proto",
}

// RegisterSessionServiceServer registers srv on s.
func RegisterSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&SessionServiceDesc, srv)
}

// SessionServiceClient calls the session service.
type SessionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSessionServiceClient creates a client on cc.
func NewSessionServiceClient(cc grpc.ClientConnInterface) *SessionServiceClient {
	return &SessionServiceClient{cc: cc}
}

// Call invokes method with req.
func (c *SessionServiceClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+SessionServiceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
