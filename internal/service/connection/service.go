package connection

import (
	"context"
	"strings"

	"github.com/oggyb/skillswap/internal/app"
	"github.com/oggyb/skillswap/internal/auth"
	"github.com/oggyb/skillswap/internal/domain"
	svcErr "github.com/oggyb/skillswap/internal/errors"
	"github.com/oggyb/skillswap/internal/repository"
	"github.com/oggyb/skillswap/internal/rpc"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service implements the Connection gRPC API: requests, answers, listings and
// the pending-request badge count.
type Service struct {
	appCtx      *app.AppContext
	connections *repository.ConnectionRepository
}

var _ rpc.ConnectionServer = (*Service)(nil)

func NewConnectionService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		connections: repository.NewConnectionRepository(appCtx.DB),
	}
}

// RequestConnection opens a pending request from the caller to req.RecipientID.
//
// Behavior:
//   - Self-requests → InvalidArgument.
//   - Missing profile on either side → NotFound.
//   - Any existing connection for the pair → AlreadyExists.
//   - The recipient's cached pending count is dropped.
func (s *Service) RequestConnection(ctx context.Context, req *rpc.RequestConnectionRequest) (*rpc.ConnectionResponse, error) {
	id, err := auth.FromContext(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("RequestConnection called", "requester", id.ID, "recipient", req.RecipientID)

	c, err := s.connections.Create(ctx, id.ID, req.RecipientID)
	if err != nil {
		s.appCtx.Logger.Error("RequestConnection failed", "requester", id.ID, "recipient", req.RecipientID, "err", err)
		return nil, svcErr.Map(err)
	}

	s.invalidate(ctx, c.RecipientID)
	return &rpc.ConnectionResponse{Connection: c}, nil
}

// AcceptConnection moves a pending request to connected. Only the recipient
// may call it.
func (s *Service) AcceptConnection(ctx context.Context, req *rpc.RespondConnectionRequest) (*rpc.ConnectionResponse, error) {
	return s.respond(ctx, req, domain.StatusConnected)
}

// RejectConnection moves a pending request to rejected. Only the recipient
// may call it.
func (s *Service) RejectConnection(ctx context.Context, req *rpc.RespondConnectionRequest) (*rpc.ConnectionResponse, error) {
	return s.respond(ctx, req, domain.StatusRejected)
}

func (s *Service) respond(ctx context.Context, req *rpc.RespondConnectionRequest, to domain.Status) (*rpc.ConnectionResponse, error) {
	id, err := auth.FromContext(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("respond called", "connection", req.ConnectionID, "actor", id.ID, "to", to)

	var c domain.Connection
	if to == domain.StatusConnected {
		c, err = s.connections.Accept(ctx, req.ConnectionID, id.ID)
	} else {
		c, err = s.connections.Reject(ctx, req.ConnectionID, id.ID)
	}
	if err != nil {
		s.appCtx.Logger.Error("respond failed", "connection", req.ConnectionID, "actor", id.ID, "to", to, "err", err)
		return nil, svcErr.Map(err)
	}

	s.invalidate(ctx, c.RecipientID)
	return &rpc.ConnectionResponse{Connection: c}, nil
}

// GetConnection returns one connection the caller is part of.
func (s *Service) GetConnection(ctx context.Context, req *rpc.RespondConnectionRequest) (*rpc.ConnectionResponse, error) {
	id, err := auth.FromContext(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	c, err := s.connections.Get(ctx, req.ConnectionID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !c.Involves(id.ID) {
		return nil, svcErr.Map(svcErr.Forbidden("connection %s does not involve you", c.ID))
	}
	return &rpc.ConnectionResponse{Connection: c}, nil
}

// ListConnections pages through the caller's connections, newest first.
func (s *Service) ListConnections(ctx context.Context, req *rpc.ListConnectionsRequest) (*rpc.ListConnectionsResponse, error) {
	id, err := auth.FromContext(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug(
		"ListConnections called",
		"caller", id.ID,
		"status", req.Status,
		"direction", req.Direction,
		"token", req.PaginationToken,
	)

	filter, err := parseFilter(req)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	size := int(req.PageSize)
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	conns, next, err := s.connections.ListForUser(ctx, id.ID, filter, req.PaginationToken, size)
	if err != nil {
		s.appCtx.Logger.Error("ListForUser failed", "caller", id.ID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &rpc.ListConnectionsResponse{Connections: conns, NextPaginationToken: next}, nil
}

// CountPending returns how many requests wait for the caller.
// Cache-first strategy:
//  1. Attempts to read from Redis (connections:pending:userID).
//  2. On a miss or a Redis error, falls back to the DB.
//  3. On DB fetch, updates Redis with a 1h TTL unless a connection write
//     invalidated the count in the meantime.
func (s *Service) CountPending(ctx context.Context, _ *rpc.CountPendingRequest) (*rpc.CountPendingResponse, error) {
	id, err := auth.FromContext(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	n, ok, err := s.appCtx.RedisCache.GetPendingCount(ctx, id.ID)
	if err != nil {
		s.appCtx.Logger.Warn("pending count cache read failed", "user", id.ID, "err", err)
	}
	if ok {
		return &rpc.CountPendingResponse{Count: n}, nil
	}

	gen, genErr := s.appCtx.RedisCache.PendingGeneration(ctx, id.ID)

	// fallback: DB
	n, err = s.connections.CountPendingIncoming(ctx, id.ID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	if genErr != nil {
		s.appCtx.Logger.Warn("pending count cache skipped", "user", id.ID, "err", genErr)
		return &rpc.CountPendingResponse{Count: n}, nil
	}
	if _, err := s.appCtx.RedisCache.SetPendingCountIfCurrent(ctx, id.ID, n, gen); err != nil {
		s.appCtx.Logger.Warn("pending count cache write failed", "user", id.ID, "err", err)
	}
	return &rpc.CountPendingResponse{Count: n}, nil
}

func (s *Service) invalidate(ctx context.Context, userIDs ...string) {
	if err := s.appCtx.RedisCache.InvalidatePendingCount(ctx, userIDs...); err != nil {
		s.appCtx.Logger.Warn("pending count invalidation failed", "users", userIDs, "err", err)
	}
}

func parseFilter(req *rpc.ListConnectionsRequest) (repository.ConnectionFilter, error) {
	var f repository.ConnectionFilter

	if raw := strings.ToLower(strings.TrimSpace(req.Status)); raw != "" {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = &st
	}

	switch strings.ToLower(strings.TrimSpace(req.Direction)) {
	case "", "all":
		f.Direction = repository.DirectionAll
	case "incoming":
		f.Direction = repository.DirectionIncoming
	case "outgoing":
		f.Direction = repository.DirectionOutgoing
	default:
		return f, svcErr.Validation("unknown direction %q", req.Direction)
	}
	return f, nil
}
