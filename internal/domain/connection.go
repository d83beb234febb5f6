package domain

import (
	"time"

	svcErr "github.com/oggyb/skillswap/internal/errors"
)

// Status is the lifecycle state of a Connection. The implicit NONE state is
// the absence of a row.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConnected Status = "connected"
	StatusRejected  Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConnected, StatusRejected:
		return st, nil
	}
	return "", svcErr.Validation("unknown connection status %q", s)
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusConnected || s == StatusRejected
}

type Connection struct {
	ID          string     `json:"id"`
	RequesterID string     `json:"requesterId"`
	RecipientID string     `json:"recipientId"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

// PairKey orders two user ids so that (a, b) and (b, a) share one key.
func PairKey(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}

// Involves reports whether userID is either side of the connection.
func (c Connection) Involves(userID string) bool {
	return c.RequesterID == userID || c.RecipientID == userID
}

// Counterpart returns the other side of the connection for userID.
func (c Connection) Counterpart(userID string) string {
	if c.RequesterID == userID {
		return c.RecipientID
	}
	return c.RequesterID
}

// Resolve moves a pending connection to connected or rejected. Only the
// recipient may resolve; permission is checked before state.
func (c *Connection) Resolve(actingUserID string, to Status, at time.Time) error {
	if to != StatusConnected && to != StatusRejected {
		return svcErr.Validation("cannot resolve a connection to %q", to)
	}
	if actingUserID != c.RecipientID {
		if actingUserID == c.RequesterID {
			return svcErr.Forbidden("the requester cannot answer their own connection request")
		}
		return svcErr.Forbidden("user %s is not the recipient of connection %s", actingUserID, c.ID)
	}
	if c.Status != StatusPending {
		return svcErr.InvalidState("connection %s is %s, not pending", c.ID, c.Status)
	}

	c.Status = to
	resolved := at
	c.ResolvedAt = &resolved
	return nil
}
