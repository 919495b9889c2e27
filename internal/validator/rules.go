package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"hireflow_backend/internal/models"
)

// registerCustomRules wires the recruiting-domain validation tags into the
// validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule failing to register is a startup error; do not run
			// with half a validator.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-candidate-status", validateCandidateStatus)
	mustRegister("is-ai-recommendation", validateAIRecommendation)
	mustRegister("is-verdict-decision", validateVerdictDecision)
	mustRegister("score", validateScore)
}

// --- Validation functions ---
// Empty values pass; combine with 'required' where the field is mandatory.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidUserRole(models.UserRole(value))
}

func validateCandidateStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.CandidateStatus(value).IsValid()
}

func validateAIRecommendation(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.AIRecommendation(value).IsValid()
}

func validateVerdictDecision(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.VerdictDecision(value).IsValid()
}

func validateScore(fl validator.FieldLevel) bool {
	value := fl.Field().Float()
	return value >= 0 && value <= 100
}
