package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the academy's business
// rules registered as custom tags.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single field failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// New creates a validator with all business rules registered.
func New() *Validator {
	v := &Validator{validate: validator.New()}
	v.registerBusinessRules()
	return v
}

// Validate validates a struct and returns structured field errors, or nil.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	for _, fe := range err.(validator.ValidationErrors) {
		errors = append(errors, ValidationError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errors
}

// ValidateDateRange checks that end does not precede start. Used by absence
// requests, which the storage layer does not constrain.
func (v *Validator) ValidateDateRange(start, end time.Time) ValidationErrors {
	if end.Before(start) {
		return ValidationErrors{{
			Field:   "EndDate",
			Message: "must not be before start date",
			Rule:    "date_range",
		}}
	}
	return nil
}

func (v *Validator) registerBusinessRules() {
	// Roles are the three fixed academy roles.
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "ADMIN", "TEACHER", "STUDENT":
			return true
		}
		return false
	})

	// Skill scores are 0-10; the storage layer does not constrain them.
	v.validate.RegisterValidation("skill_score", func(fl validator.FieldLevel) bool {
		score := fl.Field().Int()
		return score >= 0 && score <= 10
	})

	v.validate.RegisterValidation("enrollment_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		return t == "ALTA" || t == "BAJA"
	})

	v.validate.RegisterValidation("timelog_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		return t == "CLOCK_IN" || t == "CLOCK_OUT"
	})

	v.validate.RegisterValidation("absence_decision", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "APPROVED" || s == "REJECTED"
	})

	// Usernames are login identifiers: lowercase letters, digits, dots,
	// underscores, dashes.
	v.validate.RegisterValidation("username_format", func(fl validator.FieldLevel) bool {
		username := fl.Field().String()
		if len(username) < 3 || len(username) > 100 {
			return false
		}
		for _, r := range username {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= '0' && r <= '9':
			case r == '.' || r == '_' || r == '-':
			default:
				return false
			}
		}
		return true
	})
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "user_role":
		return "must be one of ADMIN, TEACHER, STUDENT"
	case "skill_score":
		return "must be between 0 and 10"
	case "enrollment_type":
		return "must be ALTA or BAJA"
	case "timelog_type":
		return "must be CLOCK_IN or CLOCK_OUT"
	case "absence_decision":
		return "must be APPROVED or REJECTED"
	case "username_format":
		return "must be 3-100 lowercase letters, digits, dots, underscores or dashes"
	default:
		return strings.TrimSpace(fmt.Sprintf("failed %s validation", fe.Tag()))
	}
}
