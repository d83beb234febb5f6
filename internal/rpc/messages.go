package rpc

import (
	"github.com/oggyb/skillswap/internal/domain"
)

// AccountService

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	// ExpiresAt is unix seconds.
	ExpiresAt int64 `json:"expiresAt"`
}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	HasProfile bool   `json:"hasProfile"`
}

// CatalogService

type ListCategoriesRequest struct{}

type Category struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type ListSkillsRequest struct {
	Category string `json:"category"`
}

type ListSkillsResponse struct {
	Skills []string `json:"skills"`
}

type LookupSkillRequest struct {
	Skill string `json:"skill"`
}

type LookupSkillResponse struct {
	Known      bool     `json:"known"`
	Categories []string `json:"categories"`
}

// ProfileService

type GetProfileRequest struct {
	// UserID defaults to the caller.
	UserID string `json:"userId,omitempty"`
}

type UpsertProfileRequest struct {
	Profile domain.ProfileInput `json:"profile"`
}

type ProfileResponse struct {
	Profile domain.Profile `json:"profile"`
}

// MatchService

type FindMatchesRequest struct {
	// Limit <= 0 means the server default.
	Limit int32 `json:"limit,omitempty"`
}

type Match struct {
	UserID          string         `json:"userId"`
	DisplayName     string         `json:"displayName"`
	Score           int32          `json:"score"`
	OverlapLearning []domain.Skill `json:"overlapLearning"`
	OverlapTeaching []domain.Skill `json:"overlapTeaching"`
	Candidate       domain.Profile `json:"candidate"`
}

type FindMatchesResponse struct {
	Matches []Match `json:"matches"`
}

// ConnectionService

type RequestConnectionRequest struct {
	RecipientID string `json:"recipientId"`
}

type RespondConnectionRequest struct {
	ConnectionID string `json:"connectionId"`
}

type ConnectionResponse struct {
	Connection domain.Connection `json:"connection"`
}

type ListConnectionsRequest struct {
	// Status is pending, connected, rejected or empty for any.
	Status string `json:"status,omitempty"`
	// Direction is incoming, outgoing or empty for both.
	Direction       string  `json:"direction,omitempty"`
	PaginationToken *string `json:"paginationToken,omitempty"`
	PageSize        int32   `json:"pageSize,omitempty"`
}

type ListConnectionsResponse struct {
	Connections         []domain.Connection `json:"connections"`
	NextPaginationToken *string             `json:"nextPaginationToken,omitempty"`
}

type CountPendingRequest struct{}

type CountPendingResponse struct {
	Count int64 `json:"count"`
}
