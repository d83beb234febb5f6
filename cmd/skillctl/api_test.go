package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oggyb/skillswap/internal/domain"
	svcErr "github.com/oggyb/skillswap/internal/errors"
)

func TestSkillNames(t *testing.T) {
	assert.Equal(t, "-", skillNames(nil))
	assert.Equal(t, "Go (expert), Spanish", skillNames([]domain.Skill{
		{Name: "Go", Level: domain.LevelExpert},
		{Name: "Spanish"},
	}))
}

func TestDescribe(t *testing.T) {
	err := describe(svcErr.Map(svcErr.Conflict("a connection already exists")))
	assert.Contains(t, err.Error(), "AlreadyExists: ")
	assert.Contains(t, err.Error(), "a connection already exists (it already exists)")

	err = describe(svcErr.Map(svcErr.Unauthenticated("sign in required")))
	assert.Contains(t, err.Error(), "skillctl login")

	err = describe(svcErr.Map(errors.New("boom")))
	assert.Equal(t, "Internal: internal error", err.Error())
}
