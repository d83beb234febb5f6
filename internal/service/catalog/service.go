package catalog

import (
	"context"
	"strings"

	"github.com/oggyb/skillswap/internal/app"
	svcErr "github.com/oggyb/skillswap/internal/errors"
	"github.com/oggyb/skillswap/internal/rpc"
)

// Service serves the skill catalog. Every method is public and read-only.
type Service struct {
	appCtx *app.AppContext
}

var _ rpc.CatalogServer = (*Service)(nil)

func NewCatalogService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx}
}

func (s *Service) ListCategories(_ context.Context, _ *rpc.ListCategoriesRequest) (*rpc.ListCategoriesResponse, error) {
	cats := s.appCtx.Catalog.Categories()
	resp := &rpc.ListCategoriesResponse{Categories: make([]rpc.Category, len(cats))}
	for i, c := range cats {
		resp.Categories[i] = rpc.Category{Name: c.Name, Skills: c.Skills}
	}
	return resp, nil
}

func (s *Service) ListSkills(_ context.Context, req *rpc.ListSkillsRequest) (*rpc.ListSkillsResponse, error) {
	s.appCtx.Logger.Debug("ListSkills called", "category", req.Category)

	skills, err := s.appCtx.Catalog.SkillsIn(strings.TrimSpace(req.Category))
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &rpc.ListSkillsResponse{Skills: skills}, nil
}

// LookupSkill reports whether a skill is in the catalog and where.
func (s *Service) LookupSkill(_ context.Context, req *rpc.LookupSkillRequest) (*rpc.LookupSkillResponse, error) {
	name := strings.TrimSpace(req.Skill)
	if name == "" {
		return nil, svcErr.InvalidArgument("skill is required")
	}
	cats := s.appCtx.Catalog.CategoriesOf(name)
	return &rpc.LookupSkillResponse{Known: len(cats) > 0, Categories: cats}, nil
}
