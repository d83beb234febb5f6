package db

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oggyb/skillswap/internal/catalog"
)

// SeedOptions controls the demo dataset.
type SeedOptions struct {
	Users int
	// Seed makes the dataset reproducible.
	Seed     int64
	Password string
	Catalog  *catalog.Catalog
}

// DefaultSeedOptions seeds 20 users sharing the password "password".
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{Users: 20, Seed: 42, Password: "password", Catalog: catalog.Default()}
}

type SeedResult struct {
	Accounts    int
	Connections int
}

var (
	seedLevels = []string{"beginner", "intermediate", "advanced", "expert"}
	seedDays   = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	seedStates = []string{"pending", "pending", "connected", "rejected"}
)

// SeedTestData resets the database and populates it with demo accounts,
// profiles and connections.
//
// Behavior:
//  1. Clears every table, children first.
//  2. Creates opts.Users accounts (user1@example.com ...) with bcrypt hashes
//     and an onboarded profile each: 1-3 teaching and 1-3 learning skills
//     drawn from the catalog, plus one availability slot.
//  3. Links each user to a few others with pending, connected or rejected
//     connections, at most one per unordered pair.
//
// The same options always produce the same profiles and connection states.
func SeedTestData(db *gorm.DB, opts SeedOptions) (SeedResult, error) {
	if opts.Users < 2 {
		return SeedResult{}, fmt.Errorf("seed needs at least 2 users, got %d", opts.Users)
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	r := rand.New(rand.NewSource(opts.Seed))

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// a skill may sit in several categories
	var skills []string
	seen := make(map[string]bool)
	for _, c := range opts.Catalog.Categories() {
		for _, s := range c.Skills {
			if !seen[s] {
				seen[s] = true
				skills = append(skills, s)
			}
		}
	}

	var res SeedResult
	err = db.Transaction(func(tx *gorm.DB) error {
		// --- Fresh start ---
		for _, model := range []any{
			&Connection{}, &SocialLink{}, &AvailabilitySlot{},
			&LearningSkill{}, &TeachingSkill{}, &Profile{}, &Account{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}

		// --- Accounts + profiles ---
		ids := make([]string, opts.Users)
		for i := range ids {
			n := i + 1
			ids[i] = uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("skillswap-seed-%d-%d", opts.Seed, n))).String()

			acc := Account{
				ID:           ids[i],
				Email:        fmt.Sprintf("user%d@example.com", n),
				PasswordHash: string(hash),
			}
			if err := tx.Create(&acc).Error; err != nil {
				return fmt.Errorf("failed to seed account: %w", err)
			}

			if err := tx.Create(seedProfile(r, ids[i], n, skills)).Error; err != nil {
				return fmt.Errorf("failed to seed profile: %w", err)
			}
		}
		res.Accounts = len(ids)

		// --- Connections ---
		paired := make(map[[2]string]bool)
		for i, from := range ids {
			for j := 0; j < 3; j++ {
				to := ids[r.Intn(len(ids))]
				if to == from {
					continue
				}
				low, high := from, to
				if high < low {
					low, high = high, low
				}
				if paired[[2]string{low, high}] {
					continue
				}
				paired[[2]string{low, high}] = true

				created := time.Now().UTC().Add(-time.Duration(r.Intn(500)) * time.Hour).Truncate(time.Millisecond)
				c := Connection{
					ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("skillswap-seed-conn-%d-%d-%d", opts.Seed, i, j))).String(),
					RequesterID: from,
					RecipientID: to,
					PairLow:     low,
					PairHigh:    high,
					Status:      seedStates[r.Intn(len(seedStates))],
					CreatedAt:   created,
				}
				if c.Status != "pending" {
					resolved := created.Add(time.Duration(r.Intn(48)+1) * time.Hour)
					c.ResolvedAt = &resolved
				}
				if err := tx.Create(&c).Error; err != nil {
					return fmt.Errorf("failed to seed connection: %w", err)
				}
				res.Connections++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}

func seedProfile(r *rand.Rand, id string, n int, skills []string) *Profile {
	picked := r.Perm(len(skills))
	teachN, learnN := 1+r.Intn(3), 1+r.Intn(3)

	p := &Profile{
		ID:                  id,
		DisplayName:         fmt.Sprintf("User %d", n),
		Bio:                 "Demo profile",
		OnboardingCompleted: true,
	}
	for k := 0; k < teachN; k++ {
		p.TeachingSkills = append(p.TeachingSkills, TeachingSkill{
			SkillName: skills[picked[k]],
			Level:     seedLevels[r.Intn(len(seedLevels))],
			Position:  k,
		})
	}
	for k := 0; k < learnN; k++ {
		level := ""
		if r.Intn(2) == 0 {
			level = seedLevels[r.Intn(len(seedLevels))]
		}
		p.LearningSkills = append(p.LearningSkills, LearningSkill{
			SkillName: skills[picked[teachN+k]],
			Level:     level,
			Position:  k,
		})
	}

	start := 8 + r.Intn(10)
	first := r.Intn(len(seedDays) - 1)
	p.AvailabilitySlots = []AvailabilitySlot{{
		Days:      strings.Join(seedDays[first:first+2], ","),
		StartTime: fmt.Sprintf("%02d:00", start),
		EndTime:   fmt.Sprintf("%02d:00", start+2),
	}}
	return p
}
