// Package matching scores and ranks skill-exchange partners.
package matching

import (
	"math"

	"github.com/oggyb/skillswap/internal/domain"
)

const (
	maxBase  = 50.0
	maxBonus = 50.0
)

// MatchCandidate is a scored (seeker, candidate) pair. It is recomputed on
// demand and never stored.
type MatchCandidate struct {
	Seeker    domain.Profile `json:"-"`
	Candidate domain.Profile `json:"candidate"`
	Score     int            `json:"score"`
	// Skills the seeker wants to learn that the candidate teaches, at the
	// candidate's level.
	OverlapLearning []domain.Skill `json:"overlapLearning"`
	// Skills the seeker teaches that the candidate wants to learn, at the
	// seeker's level.
	OverlapTeaching []domain.Skill `json:"overlapTeaching"`
}

// Overlap is the total number of matched skills in both directions.
func (m MatchCandidate) Overlap() int {
	return len(m.OverlapLearning) + len(m.OverlapTeaching)
}

// Score rates how well candidate serves seeker, in [0,100]. It is asymmetric:
// coverage is measured against the seeker's own skill lists.
//
//	base  = 50 * (Mlearn + Mteach) / (|seeker learning| + |seeker teaching|), capped at 50
//	bonus = 50 * (Plearn + Pteach) / (4 * (Mlearn + Mteach))
//	score = round-half-up(base + bonus)
//
// where P sums the teaching-side level weights of the matched skills. A pair
// without overlap scores exactly 0.
func Score(seeker, candidate domain.Profile) MatchCandidate {
	m := MatchCandidate{Seeker: seeker, Candidate: candidate}

	candidateTeaches := indexSkills(candidate.TeachingSkills)
	candidateLearns := indexSkills(candidate.LearningSkills)

	var pLearn, pTeach int
	for _, want := range seeker.LearningSkills {
		if lvl, ok := candidateTeaches[want.Name]; ok {
			m.OverlapLearning = append(m.OverlapLearning, domain.Skill{Name: want.Name, Level: lvl})
			pLearn += teachWeight(lvl)
		}
	}
	for _, offer := range seeker.TeachingSkills {
		if _, ok := candidateLearns[offer.Name]; ok {
			m.OverlapTeaching = append(m.OverlapTeaching, offer)
			pTeach += teachWeight(offer.Level)
		}
	}

	matched := m.Overlap()
	if matched == 0 {
		return m
	}

	base := 0.0
	if total := len(seeker.LearningSkills) + len(seeker.TeachingSkills); total > 0 {
		base = math.Min(maxBase, maxBase*float64(matched)/float64(total))
	}
	bonus := maxBonus * float64(pLearn+pTeach) / float64(domain.MaxLevelWeight*matched)

	m.Score = clamp(int(math.Floor(base+bonus+0.5)), 0, 100)
	return m
}

// teachWeight treats a teaching skill stored without a level as beginner.
func teachWeight(l domain.Level) int {
	if w := l.Weight(); w > 0 {
		return w
	}
	return domain.LevelBeginner.Weight()
}

func indexSkills(skills []domain.Skill) map[string]domain.Level {
	idx := make(map[string]domain.Level, len(skills))
	for _, s := range skills {
		idx[s.Name] = s.Level
	}
	return idx
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Less orders candidates best first: higher score, then more overlap, then
// smaller profile id.
func Less(a, b MatchCandidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if ao, bo := a.Overlap(), b.Overlap(); ao != bo {
		return ao > bo
	}
	return a.Candidate.ID < b.Candidate.ID
}
