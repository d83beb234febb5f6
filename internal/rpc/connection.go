package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ConnectionServiceName = Package + ".ConnectionService"

var (
	MethodRequestConnection = fullMethod(ConnectionServiceName, "RequestConnection")
	MethodAcceptConnection  = fullMethod(ConnectionServiceName, "AcceptConnection")
	MethodRejectConnection  = fullMethod(ConnectionServiceName, "RejectConnection")
	MethodGetConnection     = fullMethod(ConnectionServiceName, "GetConnection")
	MethodListConnections   = fullMethod(ConnectionServiceName, "ListConnections")
	MethodCountPending      = fullMethod(ConnectionServiceName, "CountPending")
)

// ConnectionServer drives connection requests on behalf of the caller.
type ConnectionServer interface {
	RequestConnection(context.Context, *RequestConnectionRequest) (*ConnectionResponse, error)
	AcceptConnection(context.Context, *RespondConnectionRequest) (*ConnectionResponse, error)
	RejectConnection(context.Context, *RespondConnectionRequest) (*ConnectionResponse, error)
	GetConnection(context.Context, *RespondConnectionRequest) (*ConnectionResponse, error)
	ListConnections(context.Context, *ListConnectionsRequest) (*ListConnectionsResponse, error)
	CountPending(context.Context, *CountPendingRequest) (*CountPendingResponse, error)
}

var ConnectionServiceDesc = grpc.ServiceDesc{
	ServiceName: ConnectionServiceName,
	HandlerType: (*ConnectionServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ConnectionServiceName, "RequestConnection", ConnectionServer.RequestConnection),
		unary(ConnectionServiceName, "AcceptConnection", ConnectionServer.AcceptConnection),
		unary(ConnectionServiceName, "RejectConnection", ConnectionServer.RejectConnection),
		unary(ConnectionServiceName, "GetConnection", ConnectionServer.GetConnection),
		unary(ConnectionServiceName, "ListConnections", ConnectionServer.ListConnections),
		unary(ConnectionServiceName, "CountPending", ConnectionServer.CountPending),
	},
}

func RegisterConnectionServer(s grpc.ServiceRegistrar, srv ConnectionServer) {
	s.RegisterService(&ConnectionServiceDesc, srv)
}

type ConnectionClient struct {
	cc grpc.ClientConnInterface
}

func NewConnectionClient(cc grpc.ClientConnInterface) *ConnectionClient {
	return &ConnectionClient{cc: cc}
}

func (c *ConnectionClient) RequestConnection(ctx context.Context, in *RequestConnectionRequest, opts ...grpc.CallOption) (*ConnectionResponse, error) {
	return invoke[ConnectionResponse](ctx, c.cc, MethodRequestConnection, in, opts)
}

func (c *ConnectionClient) AcceptConnection(ctx context.Context, in *RespondConnectionRequest, opts ...grpc.CallOption) (*ConnectionResponse, error) {
	return invoke[ConnectionResponse](ctx, c.cc, MethodAcceptConnection, in, opts)
}

func (c *ConnectionClient) RejectConnection(ctx context.Context, in *RespondConnectionRequest, opts ...grpc.CallOption) (*ConnectionResponse, error) {
	return invoke[ConnectionResponse](ctx, c.cc, MethodRejectConnection, in, opts)
}

func (c *ConnectionClient) GetConnection(ctx context.Context, in *RespondConnectionRequest, opts ...grpc.CallOption) (*ConnectionResponse, error) {
	return invoke[ConnectionResponse](ctx, c.cc, MethodGetConnection, in, opts)
}

func (c *ConnectionClient) ListConnections(ctx context.Context, in *ListConnectionsRequest, opts ...grpc.CallOption) (*ListConnectionsResponse, error) {
	return invoke[ListConnectionsResponse](ctx, c.cc, MethodListConnections, in, opts)
}

func (c *ConnectionClient) CountPending(ctx context.Context, in *CountPendingRequest, opts ...grpc.CallOption) (*CountPendingResponse, error) {
	return invoke[CountPendingResponse](ctx, c.cc, MethodCountPending, in, opts)
}
