// api/util/validation_util.go

package util

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
		return ValidRUT(fl.Field().String())
	})
	return &ValidationUtil{validate: v}
}

// Struct validates s against its validate tags. Field failures are returned
// as details on base.
func (v *ValidationUtil) Struct(s interface{}, base *intervene_errors.AppError) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return base.WithCause(err)
	}
	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = describe(fe)
	}
	return base.WithDetails(details)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "rut":
		return "must be a valid RUT"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte", "lte":
		return "is out of range"
	default:
		return "is invalid"
	}
}

func (v *ValidationUtil) ValidateStudent(student *model.Student) error {
	return v.Struct(student, intervene_errors.ErrInvalidStudentData)
}

func (v *ValidationUtil) ValidateIntervention(intervention *model.Intervention) error {
	if err := v.Struct(intervention, intervene_errors.ErrInvalidInterventionData); err != nil {
		return err
	}
	if intervention.DateResolved != nil && intervention.DateResolved.Before(intervention.DateReported) {
		return intervene_errors.ErrInvalidInterventionData.WithDetails(map[string]interface{}{
			"date_resolved": "must not be before date_reported",
		})
	}
	return nil
}

func (v *ValidationUtil) ValidateComment(comment *model.InterventionComment) error {
	return v.Struct(comment, intervene_errors.ErrInvalidCommentData)
}

func (v *ValidationUtil) ValidateUserInput(input *model.UserInput) error {
	if err := v.Struct(input, intervene_errors.ErrInvalidUserData); err != nil {
		return err
	}
	if input.Role != "" && !input.Role.Valid() {
		return intervene_errors.ErrInvalidUserData.WithDetails(map[string]interface{}{"role": "is not a valid role"})
	}
	return nil
}

func (v *ValidationUtil) ValidateProfile(input *model.ProfileInput) error {
	return v.Struct(input, intervene_errors.ErrInvalidUserData)
}

// ValidRUT checks a Chilean RUT ("12345678-5", dots optional) against its
// modulo 11 check digit.
func ValidRUT(rut string) bool {
	rut = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rut), ".", ""))
	body, dv, found := strings.Cut(rut, "-")
	if !found || len(body) < 7 || len(body) > 8 || len(dv) != 1 {
		return false
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return false
		}
	}
	if n, _ := strconv.Atoi(body); n == 0 {
		return false
	}

	sum, factor := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	var expected byte
	switch r := 11 - sum%11; r {
	case 11:
		expected = '0'
	case 10:
		expected = 'K'
	default:
		expected = byte('0' + r)
	}
	return dv[0] == expected
}
