package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/skillswap/internal/db"
	"github.com/oggyb/skillswap/internal/domain"
	svcErr "github.com/oggyb/skillswap/internal/errors"
)

// ProfileRepository provides durable storage for profiles and their skill,
// availability and social-link rows.
type ProfileRepository struct {
	db     *gorm.DB
	skills domain.SkillSet
}

// NewProfileRepository creates a repository that validates skill names
// against skills.
func NewProfileRepository(database *gorm.DB, skills domain.SkillSet) *ProfileRepository {
	return &ProfileRepository{db: database, skills: skills}
}

// Get loads one profile with all child rows.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (domain.Profile, error) {
	return loadProfile(r.db.WithContext(ctx), userID)
}

// Upsert creates or partially updates the profile of userID.
//
// Behavior:
//   - Input is validated first; a ValidationError leaves the store untouched.
//   - nil fields keep their stored value; non-nil collections replace the
//     stored rows (delete + insert).
//   - Everything runs in one transaction, so a failure at any step rolls back
//     the profile row and every child table together.
//   - The profile is marked as onboarded.
//
// Example:
//
//	repo.Upsert(ctx, "u1", domain.ProfileInput{TeachingSkills: []domain.Skill{{Name: "Go"}}})
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, in domain.ProfileInput) (domain.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Profile{}, svcErr.Validation("user id is required")
	}

	norm, err := in.Normalize(r.skills)
	if err != nil {
		return domain.Profile{}, err
	}

	var out domain.Profile
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row db.Profile
		err := tx.Where("id = ?", userID).Take(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = db.Profile{ID: userID}
		case err != nil:
			return fmt.Errorf("load profile: %w", err)
		}

		if norm.DisplayName != nil {
			row.DisplayName = *norm.DisplayName
		}
		if norm.Bio != nil {
			row.Bio = *norm.Bio
		}
		if norm.AvatarURL != nil {
			row.AvatarURL = *norm.AvatarURL
		}
		row.OnboardingCompleted = true
		row.UpdatedAt = tx.NowFunc()

		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"display_name", "bio", "avatar_url", "onboarding_completed", "updated_at"}),
			}).
			Create(&row).Error; err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		if norm.TeachingSkills != nil {
			rows := make([]db.TeachingSkill, len(norm.TeachingSkills))
			for i, s := range norm.TeachingSkills {
				rows[i] = db.TeachingSkill{ProfileID: userID, SkillName: s.Name, Level: string(s.Level), Position: i}
			}
			if err := replaceRows(tx, userID, &db.TeachingSkill{}, rows); err != nil {
				return fmt.Errorf("replace teaching skills: %w", err)
			}
		}
		if norm.LearningSkills != nil {
			rows := make([]db.LearningSkill, len(norm.LearningSkills))
			for i, s := range norm.LearningSkills {
				rows[i] = db.LearningSkill{ProfileID: userID, SkillName: s.Name, Level: string(s.Level), Position: i}
			}
			if err := replaceRows(tx, userID, &db.LearningSkill{}, rows); err != nil {
				return fmt.Errorf("replace learning skills: %w", err)
			}
		}
		if norm.Availability != nil {
			rows := make([]db.AvailabilitySlot, len(norm.Availability))
			for i, s := range norm.Availability {
				rows[i] = db.AvailabilitySlot{
					ProfileID: userID,
					Days:      joinDays(s.Days),
					StartTime: s.StartTime,
					EndTime:   s.EndTime,
					Position:  i,
				}
			}
			if err := replaceRows(tx, userID, &db.AvailabilitySlot{}, rows); err != nil {
				return fmt.Errorf("replace availability: %w", err)
			}
		}
		if norm.SocialLinks != nil {
			rows := make([]db.SocialLink, len(norm.SocialLinks))
			for i, l := range norm.SocialLinks {
				rows[i] = db.SocialLink{ProfileID: userID, Platform: l.Platform, URL: l.URL, Position: i}
			}
			if err := replaceRows(tx, userID, &db.SocialLink{}, rows); err != nil {
				return fmt.Errorf("replace social links: %w", err)
			}
		}

		out, err = loadProfile(tx, userID)
		return err
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

// ListCandidates returns onboarded profiles other than excluding and anyone in
// excludingConnections, ordered by id.
func (r *ProfileRepository) ListCandidates(
	ctx context.Context,
	excluding string,
	excludingConnections []string,
) ([]domain.Profile, error) {
	query := preloadChildren(r.db.WithContext(ctx)).
		Where("id <> ? AND onboarding_completed = ?", excluding, true).
		Order("id")
	if len(excludingConnections) > 0 {
		query = query.Where("id NOT IN ?", excludingConnections)
	}

	var rows []db.Profile
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Profile, len(rows))
	for i, row := range rows {
		out[i] = toDomainProfile(row)
	}
	return out, nil
}

// Exists reports whether userID has a profile row.
func (r *ProfileRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.Profile{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

// replaceRows deletes every row of model's table owned by profileID, then
// inserts rows.
func replaceRows[T any](tx *gorm.DB, profileID string, model *T, rows []T) error {
	if err := tx.Where("profile_id = ?", profileID).Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func loadProfile(tx *gorm.DB, userID string) (domain.Profile, error) {
	var row db.Profile
	err := preloadChildren(tx).Where("id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Profile{}, svcErr.NotFound("no profile for user %s", userID)
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return toDomainProfile(row), nil
}

func preloadChildren(tx *gorm.DB) *gorm.DB {
	byPosition := func(q *gorm.DB) *gorm.DB { return q.Order("position") }
	return tx.
		Preload("TeachingSkills", byPosition).
		Preload("LearningSkills", byPosition).
		Preload("AvailabilitySlots", byPosition).
		Preload("SocialLinks", byPosition)
}

func toDomainProfile(row db.Profile) domain.Profile {
	p := domain.Profile{
		ID:                  row.ID,
		DisplayName:         row.DisplayName,
		Bio:                 row.Bio,
		AvatarURL:           row.AvatarURL,
		OnboardingCompleted: row.OnboardingCompleted,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
		TeachingSkills:      make([]domain.Skill, len(row.TeachingSkills)),
		LearningSkills:      make([]domain.Skill, len(row.LearningSkills)),
		Availability:        make([]domain.TimeSlot, len(row.AvailabilitySlots)),
		SocialLinks:         make([]domain.SocialLink, len(row.SocialLinks)),
	}
	for i, s := range row.TeachingSkills {
		p.TeachingSkills[i] = domain.Skill{Name: s.SkillName, Level: domain.Level(s.Level)}
	}
	for i, s := range row.LearningSkills {
		p.LearningSkills[i] = domain.Skill{Name: s.SkillName, Level: domain.Level(s.Level)}
	}
	for i, s := range row.AvailabilitySlots {
		p.Availability[i] = domain.TimeSlot{Days: splitDays(s.Days), StartTime: s.StartTime, EndTime: s.EndTime}
	}
	for i, l := range row.SocialLinks {
		p.SocialLinks[i] = domain.SocialLink{Platform: l.Platform, URL: l.URL}
	}
	return p
}

func joinDays(days []domain.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}

func splitDays(s string) []domain.Weekday {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]domain.Weekday, len(parts))
	for i, p := range parts {
		out[i] = domain.Weekday(p)
	}
	return out
}
