package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/clinic-api/pkg/clinictime"
)

// Validator validates request structs against their `validate` tags.
type Validator interface {
	Validate(obj interface{}) error
}

type requestValidator struct {
	validate *validator.Validate
}

// New builds a validator with the domain rules registered:
//
//	hhmm     - zero-padded 24h wall-clock time ("09:00", "23:45")
//	timezone - IANA timezone name resolvable on this host
func New() (Validator, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("hhmm", validateHHMM); err != nil {
		return nil, fmt.Errorf("failed to register hhmm rule: %w", err)
	}
	if err := v.RegisterValidation("timezone", validateTimezone); err != nil {
		return nil, fmt.Errorf("failed to register timezone rule: %w", err)
	}

	return &requestValidator{validate: v}, nil
}

func (v *requestValidator) Validate(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "hhmm":
		return fmt.Sprintf("%s must be a HH:MM time", fe.Field())
	case "timezone":
		return fmt.Sprintf("%s must be a valid IANA timezone", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a %s date", fe.Field(), fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func validateHHMM(fl validator.FieldLevel) bool {
	_, err := clinictime.ParseClock(fl.Field().String())
	return err == nil
}

func validateTimezone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := clinictime.Location(value)
	return err == nil
}
