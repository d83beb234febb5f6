package profile

import (
	"context"
	"strings"

	"github.com/oggyb/skillswap/internal/app"
	"github.com/oggyb/skillswap/internal/auth"
	svcErr "github.com/oggyb/skillswap/internal/errors"
	"github.com/oggyb/skillswap/internal/repository"
	"github.com/oggyb/skillswap/internal/rpc"
)

// Service implements the Profile gRPC API on top of ProfileRepository.
type Service struct {
	appCtx   *app.AppContext
	profiles *repository.ProfileRepository
}

var _ rpc.ProfileServer = (*Service)(nil)

func NewProfileService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		profiles: repository.NewProfileRepository(appCtx.DB, appCtx.Catalog),
	}
}

// GetProfile returns the requested profile, or the caller's own when
// req.UserID is empty.
func (s *Service) GetProfile(ctx context.Context, req *rpc.GetProfileRequest) (*rpc.ProfileResponse, error) {
	id, err := auth.FromContext(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	target := strings.TrimSpace(req.UserID)
	if target == "" {
		target = id.ID
	}
	s.appCtx.Logger.Debug("GetProfile called", "caller", id.ID, "target", target)

	p, err := s.profiles.Get(ctx, target)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &rpc.ProfileResponse{Profile: p}, nil
}

// UpsertProfile creates or partially updates the caller's profile. The write
// is all-or-nothing.
func (s *Service) UpsertProfile(ctx context.Context, req *rpc.UpsertProfileRequest) (*rpc.ProfileResponse, error) {
	id, err := auth.FromContext(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug(
		"UpsertProfile called",
		"caller", id.ID,
		"teaching", len(req.Profile.TeachingSkills),
		"learning", len(req.Profile.LearningSkills),
	)

	p, err := s.profiles.Upsert(ctx, id.ID, req.Profile)
	if err != nil {
		s.appCtx.Logger.Error("UpsertProfile failed", "caller", id.ID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &rpc.ProfileResponse{Profile: p}, nil
}
