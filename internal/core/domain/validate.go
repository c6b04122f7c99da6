package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			tag := f.Tag.Get("json")
			if tag == "" {
				tag = f.Tag.Get("yaml")
			}
			name := strings.SplitN(tag, ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("menucategory", func(fl validator.FieldLevel) bool {
			return IsMenuCategory(fl.Field().String())
		})
		_ = validate.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			return IsTimeSlot(fl.Field().String())
		})
	})
	return validate
}

// Validate checks v against its form constraints. Failures are reported as
// ErrValidation with one detail per offending field.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrValidation.WithCause(err)
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, describeField(fe))
	}
	return ErrValidation.WithDetails(strings.Join(details, "; ")).WithCause(err)
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url", "http_url":
		return fmt.Sprintf("%s must be a URL", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD form", fe.Field())
	case "timeslot":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(TimeSlots, ", "))
	case "menucategory":
		names := make([]string, len(MenuCategories))
		for i, c := range MenuCategories {
			names[i] = string(c)
		}
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(names, ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
