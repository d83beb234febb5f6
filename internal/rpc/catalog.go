package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const CatalogServiceName = Package + ".CatalogService"

var (
	MethodListCategories = fullMethod(CatalogServiceName, "ListCategories")
	MethodListSkills     = fullMethod(CatalogServiceName, "ListSkills")
	MethodLookupSkill    = fullMethod(CatalogServiceName, "LookupSkill")
)

// CatalogServer exposes the read-only skill catalog.
type CatalogServer interface {
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
	ListSkills(context.Context, *ListSkillsRequest) (*ListSkillsResponse, error)
	LookupSkill(context.Context, *LookupSkillRequest) (*LookupSkillResponse, error)
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CatalogServiceName, "ListCategories", CatalogServer.ListCategories),
		unary(CatalogServiceName, "ListSkills", CatalogServer.ListSkills),
		unary(CatalogServiceName, "LookupSkill", CatalogServer.LookupSkill),
	},
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func (c *CatalogClient) ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, MethodListCategories, in, opts)
}

func (c *CatalogClient) ListSkills(ctx context.Context, in *ListSkillsRequest, opts ...grpc.CallOption) (*ListSkillsResponse, error) {
	return invoke[ListSkillsResponse](ctx, c.cc, MethodListSkills, in, opts)
}

func (c *CatalogClient) LookupSkill(ctx context.Context, in *LookupSkillRequest, opts ...grpc.CallOption) (*LookupSkillResponse, error) {
	return invoke[LookupSkillResponse](ctx, c.cc, MethodLookupSkill, in, opts)
}
