package match

import (
	"context"

	"github.com/oggyb/skillswap/internal/app"
	"github.com/oggyb/skillswap/internal/auth"
	svcErr "github.com/oggyb/skillswap/internal/errors"
	"github.com/oggyb/skillswap/internal/matching"
	"github.com/oggyb/skillswap/internal/repository"
	"github.com/oggyb/skillswap/internal/rpc"
)

// Service implements the Match gRPC API. Matches are computed on every call
// and never stored.
type Service struct {
	appCtx   *app.AppContext
	selector *matching.Selector
}

var _ rpc.MatchServer = (*Service)(nil)

func NewMatchService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		selector: matching.NewSelector(
			repository.NewProfileRepository(appCtx.DB, appCtx.Catalog),
			repository.NewConnectionRepository(appCtx.DB),
		),
	}
}

// FindMatches ranks candidates for the caller.
//
// Behavior:
//   - limit <= 0 uses MATCH_DEFAULT_LIMIT; larger values are capped at
//     MATCH_MAX_LIMIT.
//   - The caller must have a profile (NotFound otherwise).
//   - Users with any connection to the caller are left out.
func (s *Service) FindMatches(ctx context.Context, req *rpc.FindMatchesRequest) (*rpc.FindMatchesResponse, error) {
	id, err := auth.FromContext(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	limit := s.resolveLimit(req.Limit)
	s.appCtx.Logger.Debug("FindMatches called", "caller", id.ID, "limit", limit)

	candidates, err := s.selector.SelectMatches(ctx, id.ID, limit)
	if err != nil {
		s.appCtx.Logger.Error("SelectMatches failed", "caller", id.ID, "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &rpc.FindMatchesResponse{Matches: make([]rpc.Match, len(candidates))}
	for i, c := range candidates {
		resp.Matches[i] = rpc.Match{
			UserID:          c.Candidate.ID,
			DisplayName:     c.Candidate.DisplayName,
			Score:           int32(c.Score),
			OverlapLearning: c.OverlapLearning,
			OverlapTeaching: c.OverlapTeaching,
			Candidate:       c.Candidate,
		}
	}

	s.appCtx.Logger.Debug("FindMatches result", "caller", id.ID, "count", len(resp.Matches))
	return resp, nil
}

func (s *Service) resolveLimit(requested int32) int {
	limit := int(requested)
	if limit <= 0 {
		limit = s.appCtx.Config.Match.DefaultLimit
	}
	if max := s.appCtx.Config.Match.MaxLimit; limit > max {
		limit = max
	}
	return limit
}
