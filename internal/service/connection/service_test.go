package connection_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/skillswap/internal/app"
	"github.com/oggyb/skillswap/internal/auth"
	"github.com/oggyb/skillswap/internal/domain"
	svcErr "github.com/oggyb/skillswap/internal/errors"
	"github.com/oggyb/skillswap/internal/repository"
	"github.com/oggyb/skillswap/internal/rpc"
	"github.com/oggyb/skillswap/internal/service/connection"
	"github.com/oggyb/skillswap/internal/testutil"
)

func asUser(id string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{ID: id})
}

// setupService gives every test its own DB + Redis with profiles for
// alice, bob and carol.
func setupService(t *testing.T) (*connection.Service, *app.AppContext, *miniredis.Miniredis) {
	t.Helper()

	appCtx, mr := testutil.NewAppContext(t)
	profiles := repository.NewProfileRepository(appCtx.DB, appCtx.Catalog)
	for _, id := range []string{"alice", "bob", "carol"} {
		name := id
		_, err := profiles.Upsert(context.Background(), id, domain.ProfileInput{DisplayName: &name})
		require.NoError(t, err)
	}
	return connection.NewConnectionService(appCtx), appCtx, mr
}

func request(t *testing.T, svc *connection.Service, from, to string) domain.Connection {
	t.Helper()
	resp, err := svc.RequestConnection(asUser(from), &rpc.RequestConnectionRequest{RecipientID: to})
	require.NoError(t, err)
	return resp.Connection
}

func TestRequestAndAccept(t *testing.T) {
	svc, _, _ := setupService(t)

	c := request(t, svc, "alice", "bob")
	assert.Equal(t, domain.StatusPending, c.Status)

	resp, err := svc.AcceptConnection(asUser("bob"), &rpc.RespondConnectionRequest{ConnectionID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConnected, resp.Connection.Status)

	got, err := svc.GetConnection(asUser("alice"), &rpc.RespondConnectionRequest{ConnectionID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConnected, got.Connection.Status)

	_, err = svc.GetConnection(asUser("carol"), &rpc.RespondConnectionRequest{ConnectionID: c.ID})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestRequestConnection_ErrorCodes(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.RequestConnection(asUser("alice"), &rpc.RequestConnectionRequest{RecipientID: "alice"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = svc.RequestConnection(asUser("alice"), &rpc.RequestConnectionRequest{RecipientID: "nobody"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	request(t, svc, "alice", "bob")
	_, err = svc.RequestConnection(asUser("bob"), &rpc.RequestConnectionRequest{RecipientID: "alice"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
	assert.Equal(t, svcErr.CategoryTryAgain, svcErr.CategoryFromStatus(err))

	_, err = svc.RequestConnection(context.Background(), &rpc.RequestConnectionRequest{RecipientID: "bob"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRespond_ErrorCodes(t *testing.T) {
	svc, _, _ := setupService(t)
	c := request(t, svc, "alice", "bob")

	_, err := svc.AcceptConnection(asUser("alice"), &rpc.RespondConnectionRequest{ConnectionID: c.ID})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.Equal(t, svcErr.CategoryNotAllowed, svcErr.CategoryFromStatus(err))

	_, err = svc.RejectConnection(asUser("bob"), &rpc.RespondConnectionRequest{ConnectionID: c.ID})
	require.NoError(t, err)

	_, err = svc.AcceptConnection(asUser("bob"), &rpc.RespondConnectionRequest{ConnectionID: c.ID})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Equal(t, svcErr.CategoryInvalidState, svcErr.CategoryFromStatus(err))

	_, err = svc.AcceptConnection(asUser("bob"), &rpc.RespondConnectionRequest{ConnectionID: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestListConnections(t *testing.T) {
	svc, _, _ := setupService(t)
	request(t, svc, "alice", "bob")
	fromCarol := request(t, svc, "carol", "bob")
	_, err := svc.AcceptConnection(asUser("bob"), &rpc.RespondConnectionRequest{ConnectionID: fromCarol.ID})
	require.NoError(t, err)

	resp, err := svc.ListConnections(asUser("bob"), &rpc.ListConnectionsRequest{Direction: "incoming", Status: "pending"})
	require.NoError(t, err)
	require.Len(t, resp.Connections, 1)
	assert.Equal(t, "alice", resp.Connections[0].RequesterID)
	assert.Nil(t, resp.NextPaginationToken)

	resp, err = svc.ListConnections(asUser("bob"), &rpc.ListConnectionsRequest{PageSize: 1})
	require.NoError(t, err)
	require.Len(t, resp.Connections, 1)
	require.NotNil(t, resp.NextPaginationToken)

	resp, err = svc.ListConnections(asUser("bob"), &rpc.ListConnectionsRequest{PageSize: 1, PaginationToken: resp.NextPaginationToken})
	require.NoError(t, err)
	require.Len(t, resp.Connections, 1)
	assert.Nil(t, resp.NextPaginationToken)

	_, err = svc.ListConnections(asUser("bob"), &rpc.ListConnectionsRequest{Direction: "sideways"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = svc.ListConnections(asUser("bob"), &rpc.ListConnectionsRequest{Status: "maybe"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCountPending_CacheFirst(t *testing.T) {
	svc, appCtx, mr := setupService(t)
	ctx := asUser("bob")
	key := appCtx.RedisCache.KeyForPendingCount("bob")

	request(t, svc, "alice", "bob")

	// miss: computed from the DB and cached
	resp, err := svc.CountPending(ctx, &rpc.CountPendingRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
	cached, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "1", cached)

	// hit: served from Redis
	require.NoError(t, mr.Set(key, "7"))
	resp, err = svc.CountPending(ctx, &rpc.CountPendingRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Count)

	// a new request drops the cached value
	request(t, svc, "carol", "bob")
	assert.False(t, mr.Exists(key))
	resp, err = svc.CountPending(ctx, &rpc.CountPendingRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Count)
}

func TestCountPending_AnswerInvalidates(t *testing.T) {
	svc, appCtx, mr := setupService(t)
	ctx := asUser("bob")

	c := request(t, svc, "alice", "bob")
	_, err := svc.CountPending(ctx, &rpc.CountPendingRequest{})
	require.NoError(t, err)
	require.True(t, mr.Exists(appCtx.RedisCache.KeyForPendingCount("bob")))

	_, err = svc.RejectConnection(ctx, &rpc.RespondConnectionRequest{ConnectionID: c.ID})
	require.NoError(t, err)
	assert.False(t, mr.Exists(appCtx.RedisCache.KeyForPendingCount("bob")))

	resp, err := svc.CountPending(ctx, &rpc.CountPendingRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.Count)
}

func TestCountPending_RedisDownFallsBackToDB(t *testing.T) {
	svc, _, mr := setupService(t)
	request(t, svc, "alice", "bob")
	mr.Close()

	resp, err := svc.CountPending(asUser("bob"), &rpc.CountPendingRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
}
