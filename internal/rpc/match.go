package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const MatchServiceName = Package + ".MatchService"

var MethodFindMatches = fullMethod(MatchServiceName, "FindMatches")

// MatchServer ranks candidates for the caller.
type MatchServer interface {
	FindMatches(context.Context, *FindMatchesRequest) (*FindMatchesResponse, error)
}

var MatchServiceDesc = grpc.ServiceDesc{
	ServiceName: MatchServiceName,
	HandlerType: (*MatchServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MatchServiceName, "FindMatches", MatchServer.FindMatches),
	},
}

func RegisterMatchServer(s grpc.ServiceRegistrar, srv MatchServer) {
	s.RegisterService(&MatchServiceDesc, srv)
}

type MatchClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchClient(cc grpc.ClientConnInterface) *MatchClient {
	return &MatchClient{cc: cc}
}

func (c *MatchClient) FindMatches(ctx context.Context, in *FindMatchesRequest, opts ...grpc.CallOption) (*FindMatchesResponse, error) {
	return invoke[FindMatchesResponse](ctx, c.cc, MethodFindMatches, in, opts)
}
