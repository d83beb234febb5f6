package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ProfileServiceName = Package + ".ProfileService"

var (
	MethodGetProfile    = fullMethod(ProfileServiceName, "GetProfile")
	MethodUpsertProfile = fullMethod(ProfileServiceName, "UpsertProfile")
)

// ProfileServer reads and writes profiles. Writes always target the caller.
type ProfileServer interface {
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	UpsertProfile(context.Context, *UpsertProfileRequest) (*ProfileResponse, error)
}

var ProfileServiceDesc = grpc.ServiceDesc{
	ServiceName: ProfileServiceName,
	HandlerType: (*ProfileServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ProfileServiceName, "GetProfile", ProfileServer.GetProfile),
		unary(ProfileServiceName, "UpsertProfile", ProfileServer.UpsertProfile),
	},
}

func RegisterProfileServer(s grpc.ServiceRegistrar, srv ProfileServer) {
	s.RegisterService(&ProfileServiceDesc, srv)
}

type ProfileClient struct {
	cc grpc.ClientConnInterface
}

func NewProfileClient(cc grpc.ClientConnInterface) *ProfileClient {
	return &ProfileClient{cc: cc}
}

func (c *ProfileClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *ProfileClient) UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodUpsertProfile, in, opts)
}
