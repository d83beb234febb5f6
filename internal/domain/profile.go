package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	svcErr "github.com/oggyb/skillswap/internal/errors"
)

const (
	maxDisplayName = 100
	maxBio         = 2000
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var weekdayOrder = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4, Saturday: 5, Sunday: 6,
}

// TimeSlot is a recurring weekly window. Times are "HH:MM", 24h.
type TimeSlot struct {
	Days      []Weekday `json:"days"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

// SocialPlatforms are the platforms a profile may link to.
var SocialPlatforms = []string{
	"linkedin", "github", "twitter", "instagram", "facebook",
	"youtube", "medium", "dribbble", "behance", "website",
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type Profile struct {
	ID                  string       `json:"id"`
	DisplayName         string       `json:"displayName"`
	Bio                 string       `json:"bio,omitempty"`
	AvatarURL           string       `json:"avatarUrl,omitempty"`
	TeachingSkills      []Skill      `json:"teachingSkills"`
	LearningSkills      []Skill      `json:"learningSkills"`
	Availability        []TimeSlot   `json:"availability"`
	SocialLinks         []SocialLink `json:"socialLinks"`
	OnboardingCompleted bool         `json:"onboardingCompleted"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// ProfileInput is a partial profile. Nil fields are left as stored; a non-nil
// slice replaces the stored set, so an empty slice clears it. On the wire a
// missing or null list keeps the stored set and [] clears it.
type ProfileInput struct {
	DisplayName    *string      `json:"displayName,omitempty"`
	Bio            *string      `json:"bio,omitempty"`
	AvatarURL      *string      `json:"avatarUrl,omitempty"`
	TeachingSkills []Skill      `json:"teachingSkills"`
	LearningSkills []Skill      `json:"learningSkills"`
	Availability   []TimeSlot   `json:"availability"`
	SocialLinks    []SocialLink `json:"socialLinks"`
}

// Normalize validates the input against the known skills and returns a cleaned
// copy: names trimmed, teaching levels defaulted to beginner, slot days sorted.
func (in ProfileInput) Normalize(known SkillSet) (ProfileInput, error) {
	out := ProfileInput{}

	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return ProfileInput{}, svcErr.Validation("display name must not be empty")
		}
		if utf8.RuneCountInString(name) > maxDisplayName {
			return ProfileInput{}, svcErr.Validation("display name longer than %d characters", maxDisplayName)
		}
		out.DisplayName = &name
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if utf8.RuneCountInString(bio) > maxBio {
			return ProfileInput{}, svcErr.Validation("bio longer than %d characters", maxBio)
		}
		out.Bio = &bio
	}
	if in.AvatarURL != nil {
		avatar := strings.TrimSpace(*in.AvatarURL)
		if avatar != "" {
			if err := checkURL(avatar); err != nil {
				return ProfileInput{}, svcErr.Validation("avatar url: %v", err)
			}
		}
		out.AvatarURL = &avatar
	}

	var err error
	if out.TeachingSkills, err = normalizeSkills("teaching", in.TeachingSkills, known, LevelBeginner); err != nil {
		return ProfileInput{}, err
	}
	if out.LearningSkills, err = normalizeSkills("learning", in.LearningSkills, known, ""); err != nil {
		return ProfileInput{}, err
	}

	if in.Availability != nil {
		out.Availability = make([]TimeSlot, 0, len(in.Availability))
		for i, slot := range in.Availability {
			norm, err := slot.Normalize()
			if err != nil {
				return ProfileInput{}, fmt.Errorf("availability slot %d: %w", i, err)
			}
			out.Availability = append(out.Availability, norm)
		}
	}

	if in.SocialLinks != nil {
		out.SocialLinks = make([]SocialLink, 0, len(in.SocialLinks))
		seen := make(map[string]struct{}, len(in.SocialLinks))
		for _, l := range in.SocialLinks {
			norm, err := l.Normalize()
			if err != nil {
				return ProfileInput{}, err
			}
			if _, dup := seen[norm.Platform]; dup {
				return ProfileInput{}, svcErr.Validation("social platform %q listed twice", norm.Platform)
			}
			seen[norm.Platform] = struct{}{}
			out.SocialLinks = append(out.SocialLinks, norm)
		}
	}

	return out, nil
}

// Normalize checks the slot and returns it with days sorted monday first.
func (s TimeSlot) Normalize() (TimeSlot, error) {
	if len(s.Days) == 0 {
		return TimeSlot{}, svcErr.Validation("no days selected")
	}
	days := make([]Weekday, 0, len(s.Days))
	seen := make(map[Weekday]struct{}, len(s.Days))
	for _, d := range s.Days {
		d = Weekday(strings.ToLower(strings.TrimSpace(string(d))))
		if _, ok := weekdayOrder[d]; !ok {
			return TimeSlot{}, svcErr.Validation("unknown weekday %q", d)
		}
		if _, dup := seen[d]; dup {
			return TimeSlot{}, svcErr.Validation("weekday %q listed twice", d)
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return weekdayOrder[days[i]] < weekdayOrder[days[j]] })

	start, err := ParseClock(s.StartTime)
	if err != nil {
		return TimeSlot{}, err
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return TimeSlot{}, err
	}
	if start >= end {
		return TimeSlot{}, svcErr.Validation("end time %s must be after start time %s", s.EndTime, s.StartTime)
	}

	return TimeSlot{Days: days, StartTime: FormatClock(start), EndTime: FormatClock(end)}, nil
}

// ParseClock turns "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, svcErr.Validation("invalid time %q, want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("15:04")
}

func (l SocialLink) Normalize() (SocialLink, error) {
	platform := strings.ToLower(strings.TrimSpace(l.Platform))
	known := false
	for _, p := range SocialPlatforms {
		if p == platform {
			known = true
			break
		}
	}
	if !known {
		return SocialLink{}, svcErr.Validation("unknown social platform %q", l.Platform)
	}
	u := strings.TrimSpace(l.URL)
	if err := checkURL(u); err != nil {
		return SocialLink{}, svcErr.Validation("%s url: %v", platform, err)
	}
	return SocialLink{Platform: platform, URL: u}, nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) url", raw)
	}
	return nil
}

// TeachingLevel returns the level at which the profile teaches skill.
func (p Profile) TeachingLevel(skill string) (Level, bool) {
	for _, s := range p.TeachingSkills {
		if s.Name == skill {
			return s.Level, true
		}
	}
	return "", false
}
