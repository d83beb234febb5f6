package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/skillswap/internal/catalog"
	"github.com/oggyb/skillswap/internal/domain"
	svcErr "github.com/oggyb/skillswap/internal/errors"
)

func strPtr(s string) *string { return &s }

func TestLevelWeight(t *testing.T) {
	assert.Equal(t, 1, domain.LevelBeginner.Weight())
	assert.Equal(t, 2, domain.LevelIntermediate.Weight())
	assert.Equal(t, 3, domain.LevelAdvanced.Weight())
	assert.Equal(t, 4, domain.LevelExpert.Weight())
	assert.Equal(t, 0, domain.Level("").Weight())

	l, err := domain.ParseLevel(" Expert ")
	require.NoError(t, err)
	assert.Equal(t, domain.LevelExpert, l)

	_, err = domain.ParseLevel("guru")
	assert.True(t, errors.Is(err, svcErr.ErrValidation))
}

func TestProfileInput_Normalize(t *testing.T) {
	in := domain.ProfileInput{
		DisplayName:    strPtr("  Ada  "),
		TeachingSkills: []domain.Skill{{Name: " Python "}, {Name: "Go", Level: "Advanced"}},
		LearningSkills: []domain.Skill{{Name: "Guitar"}},
		Availability: []domain.TimeSlot{
			{Days: []domain.Weekday{"friday", "Monday"}, StartTime: "9:00", EndTime: "10:30"},
		},
		SocialLinks: []domain.SocialLink{{Platform: "GitHub", URL: "https://github.com/ada"}},
	}

	out, err := in.Normalize(catalog.Default())
	require.NoError(t, err)

	assert.Equal(t, "Ada", *out.DisplayName)
	assert.Equal(t, []domain.Skill{
		{Name: "Python", Level: domain.LevelBeginner},
		{Name: "Go", Level: domain.LevelAdvanced},
	}, out.TeachingSkills)
	assert.Equal(t, []domain.Skill{{Name: "Guitar"}}, out.LearningSkills, "learning level stays unspecified")
	assert.Equal(t, []domain.Weekday{domain.Monday, domain.Friday}, out.Availability[0].Days)
	assert.Equal(t, "09:00", out.Availability[0].StartTime)
	assert.Equal(t, "github", out.SocialLinks[0].Platform)
	assert.Nil(t, out.Bio)
}

func TestProfileInput_NormalizeRejects(t *testing.T) {
	cases := map[string]domain.ProfileInput{
		"unknown skill":      {TeachingSkills: []domain.Skill{{Name: "Juggling"}}},
		"duplicate teaching": {TeachingSkills: []domain.Skill{{Name: "Go"}, {Name: "Go"}}},
		"duplicate learning": {LearningSkills: []domain.Skill{{Name: "Go"}, {Name: "Go", Level: "expert"}}},
		"bad level":          {LearningSkills: []domain.Skill{{Name: "Go", Level: "guru"}}},
		"empty name":         {DisplayName: strPtr("   ")},
		"start after end":    {Availability: []domain.TimeSlot{{Days: []domain.Weekday{"monday"}, StartTime: "11:00", EndTime: "10:00"}}},
		"start equals end":   {Availability: []domain.TimeSlot{{Days: []domain.Weekday{"monday"}, StartTime: "10:00", EndTime: "10:00"}}},
		"no days":            {Availability: []domain.TimeSlot{{StartTime: "09:00", EndTime: "10:00"}}},
		"bad weekday":        {Availability: []domain.TimeSlot{{Days: []domain.Weekday{"funday"}, StartTime: "09:00", EndTime: "10:00"}}},
		"bad clock":          {Availability: []domain.TimeSlot{{Days: []domain.Weekday{"monday"}, StartTime: "9am", EndTime: "10:00"}}},
		"bad platform":       {SocialLinks: []domain.SocialLink{{Platform: "myspace", URL: "https://myspace.com/x"}}},
		"relative url":       {SocialLinks: []domain.SocialLink{{Platform: "github", URL: "github.com/x"}}},
		"bad avatar":         {AvatarURL: strPtr("ftp://host/x.png")},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := in.Normalize(catalog.Default())
			require.Error(t, err)
			assert.True(t, errors.Is(err, svcErr.ErrValidation), "got %v", err)
		})
	}
}

func TestProfileInput_SameSkillInBothSets(t *testing.T) {
	in := domain.ProfileInput{
		TeachingSkills: []domain.Skill{{Name: "Spanish", Level: "intermediate"}},
		LearningSkills: []domain.Skill{{Name: "Spanish", Level: "expert"}},
	}
	_, err := in.Normalize(catalog.Default())
	assert.NoError(t, err)
}

func TestPairKey(t *testing.T) {
	lo, hi := domain.PairKey("b", "a")
	assert.Equal(t, "a", lo)
	assert.Equal(t, "b", hi)

	lo2, hi2 := domain.PairKey("a", "b")
	assert.Equal(t, lo, lo2)
	assert.Equal(t, hi, hi2)
}

func TestConnectionResolve(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	pending := func() domain.Connection {
		return domain.Connection{ID: "c1", RequesterID: "alice", RecipientID: "bob", Status: domain.StatusPending}
	}

	t.Run("recipient accepts", func(t *testing.T) {
		c := pending()
		require.NoError(t, c.Resolve("bob", domain.StatusConnected, now))
		assert.Equal(t, domain.StatusConnected, c.Status)
		require.NotNil(t, c.ResolvedAt)
		assert.Equal(t, now, *c.ResolvedAt)
	})

	t.Run("requester is forbidden", func(t *testing.T) {
		c := pending()
		err := c.Resolve("alice", domain.StatusConnected, now)
		assert.True(t, errors.Is(err, svcErr.ErrForbidden))
		assert.Equal(t, domain.StatusPending, c.Status)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		c := pending()
		err := c.Resolve("carol", domain.StatusRejected, now)
		assert.True(t, errors.Is(err, svcErr.ErrForbidden))
	})

	t.Run("terminal state", func(t *testing.T) {
		c := pending()
		require.NoError(t, c.Resolve("bob", domain.StatusRejected, now))
		err := c.Resolve("bob", domain.StatusConnected, now)
		assert.True(t, errors.Is(err, svcErr.ErrInvalidState))
		assert.Equal(t, domain.StatusRejected, c.Status)
	})

	t.Run("pending is not a target", func(t *testing.T) {
		c := pending()
		err := c.Resolve("bob", domain.StatusPending, now)
		assert.True(t, errors.Is(err, svcErr.ErrValidation))
	})
}

func TestConnectionCounterpart(t *testing.T) {
	c := domain.Connection{RequesterID: "alice", RecipientID: "bob"}
	assert.Equal(t, "bob", c.Counterpart("alice"))
	assert.Equal(t, "alice", c.Counterpart("bob"))
	assert.True(t, c.Involves("bob"))
	assert.False(t, c.Involves("carol"))
}
