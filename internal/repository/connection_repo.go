package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/skillswap/internal/db"
	"github.com/oggyb/skillswap/internal/domain"
	svcErr "github.com/oggyb/skillswap/internal/errors"
	"github.com/oggyb/skillswap/internal/utils/pagination"
)

// Direction narrows ListForUser to one side of a connection.
type Direction int

const (
	DirectionAll Direction = iota
	DirectionIncoming
	DirectionOutgoing
)

// ConnectionFilter selects which connections ListForUser returns.
// A nil Status means any status.
type ConnectionFilter struct {
	Status    *domain.Status
	Direction Direction
}

// ConnectionRepository stores connection requests and drives their
// PENDING -> CONNECTED / REJECTED transitions.
type ConnectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new repository bound to the given DB connection.
func NewConnectionRepository(database *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: database}
}

// Create opens a pending connection from requester to recipient.
//
// Behavior:
//   - requester == recipient → ValidationError.
//   - Either side has no profile → NotFound.
//   - Any connection already exists for the unordered pair, in any state → Conflict.
//   - A concurrent insert for the same pair loses on idx_connection_pair and
//     also gets Conflict, so exactly one row survives.
//
// Example:
//
//	repo.Create(ctx, "alice", "bob") // alice asks bob to connect
func (r *ConnectionRepository) Create(
	ctx context.Context,
	requesterID, recipientID string,
) (domain.Connection, error) {
	requesterID = strings.TrimSpace(requesterID)
	recipientID = strings.TrimSpace(recipientID)
	if requesterID == "" || recipientID == "" {
		return domain.Connection{}, svcErr.Validation("requester and recipient are required")
	}
	if requesterID == recipientID {
		return domain.Connection{}, svcErr.Validation("cannot send a connection request to yourself")
	}

	low, high := domain.PairKey(requesterID, recipientID)
	row := db.Connection{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		RecipientID: recipientID,
		PairLow:     low,
		PairHigh:    high,
		Status:      string(domain.StatusPending),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profiles int64
		if err := tx.Model(&db.Profile{}).
			Where("id IN ?", []string{requesterID, recipientID}).
			Count(&profiles).Error; err != nil {
			return fmt.Errorf("check profiles: %w", err)
		}
		if profiles < 2 {
			return svcErr.NotFound("both users need a profile before connecting")
		}

		var existing int64
		if err := tx.Model(&db.Connection{}).
			Where("pair_low = ? AND pair_high = ?", low, high).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("check pair: %w", err)
		}
		if existing > 0 {
			return svcErr.Conflict("a connection between these users already exists")
		}

		return tx.Create(&row).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Connection{}, svcErr.Conflict("a connection between these users already exists")
	}
	if err != nil {
		return domain.Connection{}, err
	}
	return toDomainConnection(row), nil
}

// Get loads one connection by id.
func (r *ConnectionRepository) Get(ctx context.Context, id string) (domain.Connection, error) {
	return loadConnection(r.db.WithContext(ctx), id)
}

// Accept moves a pending connection to connected. Only the recipient may accept.
func (r *ConnectionRepository) Accept(ctx context.Context, id, actingUserID string) (domain.Connection, error) {
	return r.resolve(ctx, id, actingUserID, domain.StatusConnected)
}

// Reject moves a pending connection to rejected. Only the recipient may reject.
func (r *ConnectionRepository) Reject(ctx context.Context, id, actingUserID string) (domain.Connection, error) {
	return r.resolve(ctx, id, actingUserID, domain.StatusRejected)
}

// resolve applies the transition guards in memory, then writes with a
// conditional update so that two racing resolutions cannot both succeed.
func (r *ConnectionRepository) resolve(
	ctx context.Context,
	id, actingUserID string,
	to domain.Status,
) (domain.Connection, error) {
	var out domain.Connection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conn, err := loadConnection(tx, id)
		if err != nil {
			return err
		}
		if err := conn.Resolve(actingUserID, to, tx.NowFunc()); err != nil {
			return err
		}

		res := tx.Model(&db.Connection{}).
			Where("id = ? AND status = ?", id, string(domain.StatusPending)).
			Updates(map[string]any{
				"status":      string(conn.Status),
				"resolved_at": *conn.ResolvedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("update connection: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return svcErr.InvalidState("connection %s is no longer pending", id)
		}

		out = conn
		return nil
	})
	if err != nil {
		return domain.Connection{}, err
	}
	return out, nil
}

// CounterpartIDs returns every user that shares a connection with userID,
// in any state.
func (r *ConnectionRepository) CounterpartIDs(ctx context.Context, userID string) ([]string, error) {
	var rows []db.Connection
	err := r.db.WithContext(ctx).
		Select("requester_id", "recipient_id").
		Where("requester_id = ? OR recipient_id = ?", userID, userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.RequesterID == userID {
			ids = append(ids, row.RecipientID)
		} else {
			ids = append(ids, row.RequesterID)
		}
	}
	return ids, nil
}

// ListForUser returns connections involving userID, newest first.
//
// Behavior:
//   - Ordered by created_at DESC, id DESC.
//   - filter narrows by status and by direction relative to userID.
//   - Supports cursor-based pagination via paginationToken.
//
// Example:
//
//	pending := domain.StatusPending
//	repo.ListForUser(ctx, "bob", ConnectionFilter{Status: &pending, Direction: DirectionIncoming}, nil, 20)
func (r *ConnectionRepository) ListForUser(
	ctx context.Context,
	userID string,
	filter ConnectionFilter,
	paginationToken *string,
	limit int,
) ([]domain.Connection, *string, error) {
	if limit < 1 {
		return nil, nil, svcErr.Validation("limit must be at least 1")
	}

	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, svcErr.Validation("%v", err)
	}

	query := r.db.WithContext(ctx).Model(&db.Connection{})
	switch filter.Direction {
	case DirectionIncoming:
		query = query.Where("recipient_id = ?", userID)
	case DirectionOutgoing:
		query = query.Where("requester_id = ?", userID)
	default:
		query = query.Where("(requester_id = ? OR recipient_id = ?)", userID, userID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	// apply cursor
	if !cursor.IsZero() {
		ts := time.UnixMilli(cursor.CreatedUnix).UTC()
		query = query.Where(
			"(created_at < ? OR (created_at = ? AND id < ?))",
			ts, ts, cursor.ID,
		)
	}

	var rows []db.Connection
	if err := query.Order("created_at DESC, id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(rows) > limit {
		last := rows[limit-1]
		token, err := pagination.Encode(pagination.Cursor{
			ID:          last.ID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		if err != nil {
			return nil, nil, err
		}
		nextToken = &token
		rows = rows[:limit]
	}

	out := make([]domain.Connection, len(rows))
	for i, row := range rows {
		out[i] = toDomainConnection(row)
	}
	return out, nextToken, nil
}

// CountPendingIncoming returns how many pending requests wait for userID.
// Used in conjunction with the Redis cache (DB is fallback).
func (r *ConnectionRepository) CountPendingIncoming(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Connection{}).
		Where("recipient_id = ? AND status = ?", userID, string(domain.StatusPending)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func loadConnection(tx *gorm.DB, id string) (domain.Connection, error) {
	var row db.Connection
	err := tx.Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Connection{}, svcErr.NotFound("connection %s not found", id)
	}
	if err != nil {
		return domain.Connection{}, err
	}
	return toDomainConnection(row), nil
}

func toDomainConnection(row db.Connection) domain.Connection {
	return domain.Connection{
		ID:          row.ID,
		RequesterID: row.RequesterID,
		RecipientID: row.RecipientID,
		Status:      domain.Status(row.Status),
		CreatedAt:   row.CreatedAt,
		ResolvedAt:  row.ResolvedAt,
	}
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
