package domain

import (
	"strings"

	svcErr "github.com/oggyb/skillswap/internal/errors"
)

// Level is a proficiency level. The zero value means "unspecified", which is
// only meaningful for learning skills (any level acceptable).
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// MaxLevelWeight is the weight of the highest level.
const MaxLevelWeight = 4

// ParseLevel accepts the four level names, case-insensitively. Empty input
// yields the zero Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case "", LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return l, nil
	}
	return "", svcErr.Validation("unknown proficiency level %q", s)
}

// Weight maps a level to 1..4, and 0 when unspecified.
func (l Level) Weight() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	}
	return 0
}

type Skill struct {
	Name  string `json:"name"`
	Level Level  `json:"level,omitempty"`
}

// SkillSet answers whether a skill name exists. *catalog.Catalog satisfies it.
type SkillSet interface {
	Contains(skill string) bool
}

// normalizeSkills trims and checks a skill list. defaultLevel fills in empty
// levels; pass "" to keep them empty.
func normalizeSkills(kind string, in []Skill, known SkillSet, defaultLevel Level) ([]Skill, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]Skill, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, svcErr.Validation("%s skill with empty name", kind)
		}
		if known != nil && !known.Contains(name) {
			return nil, svcErr.Validation("unknown %s skill %q", kind, name)
		}
		if _, dup := seen[name]; dup {
			return nil, svcErr.Validation("%s skill %q listed twice", kind, name)
		}
		seen[name] = struct{}{}

		lvl, err := ParseLevel(string(s.Level))
		if err != nil {
			return nil, err
		}
		if lvl == "" {
			lvl = defaultLevel
		}
		out = append(out, Skill{Name: name, Level: lvl})
	}
	return out, nil
}
