package match_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/skillswap/internal/app"
	"github.com/oggyb/skillswap/internal/auth"
	"github.com/oggyb/skillswap/internal/domain"
	"github.com/oggyb/skillswap/internal/repository"
	"github.com/oggyb/skillswap/internal/rpc"
	"github.com/oggyb/skillswap/internal/service/match"
	"github.com/oggyb/skillswap/internal/testutil"
)

func asUser(id string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{ID: id})
}

func skills(level domain.Level, names ...string) []domain.Skill {
	out := make([]domain.Skill, len(names))
	for i, n := range names {
		out[i] = domain.Skill{Name: n, Level: level}
	}
	return out
}

// seedProfiles stores a seeker and three candidates:
//   - perfect: teaches both seeker wants at expert, learns the seeker's skill
//   - partial: teaches one wanted skill at beginner
//   - none:    no overlap at all
func seedProfiles(t *testing.T, appCtx *app.AppContext) {
	t.Helper()
	repo := repository.NewProfileRepository(appCtx.DB, appCtx.Catalog)
	ctx := context.Background()

	inputs := map[string]domain.ProfileInput{
		"seeker": {
			TeachingSkills: skills(domain.LevelExpert, "Go"),
			LearningSkills: skills("", "Spanish", "Guitar"),
		},
		"perfect": {
			TeachingSkills: skills(domain.LevelExpert, "Spanish", "Guitar"),
			LearningSkills: skills("", "Go"),
		},
		"partial": {
			TeachingSkills: skills(domain.LevelBeginner, "Spanish"),
		},
		"none": {
			TeachingSkills: skills(domain.LevelAdvanced, "Cooking"),
			LearningSkills: skills("", "Yoga"),
		},
	}
	for id, in := range inputs {
		_, err := repo.Upsert(ctx, id, in)
		require.NoError(t, err)
	}
}

func TestFindMatches_Ranked(t *testing.T) {
	appCtx, _ := testutil.NewAppContext(t)
	seedProfiles(t, appCtx)
	svc := match.NewMatchService(appCtx)

	resp, err := svc.FindMatches(asUser("seeker"), &rpc.FindMatchesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 3)

	assert.Equal(t, "perfect", resp.Matches[0].UserID)
	assert.Equal(t, int32(100), resp.Matches[0].Score)
	assert.Equal(t, "partial", resp.Matches[1].UserID)
	assert.Equal(t, "none", resp.Matches[2].UserID)
	assert.Equal(t, int32(0), resp.Matches[2].Score)

	resp, err = svc.FindMatches(asUser("seeker"), &rpc.FindMatchesRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "perfect", resp.Matches[0].UserID)
}

func TestFindMatches_ExcludesConnected(t *testing.T) {
	appCtx, _ := testutil.NewAppContext(t)
	seedProfiles(t, appCtx)
	svc := match.NewMatchService(appCtx)

	conns := repository.NewConnectionRepository(appCtx.DB)
	c, err := conns.Create(context.Background(), "perfect", "seeker")
	require.NoError(t, err)
	_, err = conns.Reject(context.Background(), c.ID, "seeker")
	require.NoError(t, err)

	resp, err := svc.FindMatches(asUser("seeker"), &rpc.FindMatchesRequest{})
	require.NoError(t, err)
	for _, m := range resp.Matches {
		assert.NotEqual(t, "perfect", m.UserID)
	}
	assert.Len(t, resp.Matches, 2)
}

func TestFindMatches_LimitCapped(t *testing.T) {
	appCtx, _ := testutil.NewAppContext(t)
	appCtx.Config.Match.MaxLimit = 2
	seedProfiles(t, appCtx)
	svc := match.NewMatchService(appCtx)

	resp, err := svc.FindMatches(asUser("seeker"), &rpc.FindMatchesRequest{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, resp.Matches, 2)
}

func TestFindMatches_Errors(t *testing.T) {
	appCtx, _ := testutil.NewAppContext(t)
	svc := match.NewMatchService(appCtx)

	_, err := svc.FindMatches(context.Background(), &rpc.FindMatchesRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = svc.FindMatches(asUser("no-profile"), &rpc.FindMatchesRequest{})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestFindMatches_EmptyPool(t *testing.T) {
	appCtx, _ := testutil.NewAppContext(t)
	repo := repository.NewProfileRepository(appCtx.DB, appCtx.Catalog)
	_, err := repo.Upsert(context.Background(), "alone", domain.ProfileInput{TeachingSkills: skills(domain.LevelExpert, "Go")})
	require.NoError(t, err)

	svc := match.NewMatchService(appCtx)
	resp, err := svc.FindMatches(asUser("alone"), &rpc.FindMatchesRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Matches)
	assert.Empty(t, resp.Matches)
}
