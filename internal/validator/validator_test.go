package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleStruct struct {
	Role string `json:"role" validate:"required,is-user-role"`
}

type statusStruct struct {
	Status string `json:"status" validate:"omitempty,is-candidate-status"`
}

type scoreStruct struct {
	Score float64 `json:"score" validate:"score"`
}

type verdictStruct struct {
	Decision string `json:"decision" validate:"required,is-verdict-decision"`
}

type recommendationStruct struct {
	Recommendation string `json:"recommendation" validate:"required,is-ai-recommendation"`
}

func TestValidator_UserRoleTag(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&roleStruct{Role: "hr"}))
	assert.NoError(t, v.Validate(&roleStruct{Role: "admin"}))
	assert.Error(t, v.Validate(&roleStruct{Role: "manager"}))
	assert.Error(t, v.Validate(&roleStruct{Role: ""}))
}

func TestValidator_CandidateStatusTag(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&statusStruct{Status: "ai_review"}))
	assert.NoError(t, v.Validate(&statusStruct{Status: ""})) // omitempty
	assert.Error(t, v.Validate(&statusStruct{Status: "in_review"}))
}

func TestValidator_ScoreTag(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&scoreStruct{Score: 0}))
	assert.NoError(t, v.Validate(&scoreStruct{Score: 100}))
	assert.NoError(t, v.Validate(&scoreStruct{Score: 59.5}))
	assert.Error(t, v.Validate(&scoreStruct{Score: -0.1}))
	assert.Error(t, v.Validate(&scoreStruct{Score: 100.1}))
}

func TestValidator_VerdictDecisionTag(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&verdictStruct{Decision: "hire"}))
	assert.NoError(t, v.Validate(&verdictStruct{Decision: "reject"}))
	assert.Error(t, v.Validate(&verdictStruct{Decision: "HIRE"}))
}

func TestValidator_AIRecommendationTag(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&recommendationStruct{Recommendation: "HIRE"}))
	assert.NoError(t, v.Validate(&recommendationStruct{Recommendation: "REVIEW"}))
	assert.Error(t, v.Validate(&recommendationStruct{Recommendation: "hire"}))
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&roleStruct{Role: "bogus"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "role")
	assert.NotContains(t, vErr.Errors, "Role")
}
