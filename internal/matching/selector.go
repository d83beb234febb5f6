package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/oggyb/skillswap/internal/domain"
	svcErr "github.com/oggyb/skillswap/internal/errors"
)

// ProfileSource is the part of the profile store the selector reads.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
	ListCandidates(ctx context.Context, excluding string, excludingConnections []string) ([]domain.Profile, error)
}

// ConnectionSource lists every user that already has a connection row
// (pending, connected or rejected) with userID.
type ConnectionSource interface {
	CounterpartIDs(ctx context.Context, userID string) ([]string, error)
}

type Selector struct {
	profiles    ProfileSource
	connections ConnectionSource
}

func NewSelector(profiles ProfileSource, connections ConnectionSource) *Selector {
	return &Selector{profiles: profiles, connections: connections}
}

// SelectMatches returns up to k candidates for seekerID, best first.
//
// Behavior:
//   - k < 1 is a validation error.
//   - A seeker without a profile yields NotFound.
//   - The pool excludes the seeker and anyone already connected, pending or
//     rejected with them.
//   - An empty pool yields an empty slice, never padding.
func (s *Selector) SelectMatches(ctx context.Context, seekerID string, k int) ([]MatchCandidate, error) {
	if k < 1 {
		return nil, svcErr.Validation("match limit must be at least 1, got %d", k)
	}

	seeker, err := s.profiles.Get(ctx, seekerID)
	if err != nil {
		return nil, err
	}

	excluded, err := s.connections.CounterpartIDs(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("load connections: %w", err)
	}

	pool, err := s.profiles.ListCandidates(ctx, seekerID, excluded)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	return Rank(seeker, pool, k), nil
}

// Rank scores every profile in pool against seeker and keeps the best k.
func Rank(seeker domain.Profile, pool []domain.Profile, k int) []MatchCandidate {
	out := make([]MatchCandidate, 0, len(pool))
	for _, p := range pool {
		if p.ID == seeker.ID {
			continue
		}
		out = append(out, Score(seeker, p))
	}

	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })

	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
