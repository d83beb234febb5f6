package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/skillswap/internal/rpc"
	"github.com/oggyb/skillswap/internal/service/catalog"
	"github.com/oggyb/skillswap/internal/testutil"
)

func setupService(t *testing.T) *catalog.Service {
	t.Helper()
	appCtx, _ := testutil.NewAppContext(t)
	return catalog.NewCatalogService(appCtx)
}

func TestListCategories(t *testing.T) {
	svc := setupService(t)

	resp, err := svc.ListCategories(context.Background(), &rpc.ListCategoriesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 9)
	assert.Equal(t, "Technology", resp.Categories[0].Name)
	assert.Contains(t, resp.Categories[0].Skills, "Go")
}

func TestListSkills(t *testing.T) {
	svc := setupService(t)

	resp, err := svc.ListSkills(context.Background(), &rpc.ListSkillsRequest{Category: " Languages "})
	require.NoError(t, err)
	assert.Contains(t, resp.Skills, "Spanish")

	_, err = svc.ListSkills(context.Background(), &rpc.ListSkillsRequest{Category: "Alchemy"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestLookupSkill(t *testing.T) {
	svc := setupService(t)

	resp, err := svc.LookupSkill(context.Background(), &rpc.LookupSkillRequest{Skill: "Yoga"})
	require.NoError(t, err)
	assert.True(t, resp.Known)
	assert.Len(t, resp.Categories, 2)

	resp, err = svc.LookupSkill(context.Background(), &rpc.LookupSkillRequest{Skill: "Teleportation"})
	require.NoError(t, err)
	assert.False(t, resp.Known)

	_, err = svc.LookupSkill(context.Background(), &rpc.LookupSkillRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
