package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Wait strategies accepted by sequencer.wait_strategy
const (
	WaitStrategyTimer = "timer"
	WaitStrategyPoll  = "poll"
)

// Validator checks a loaded Config against its validate tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that knows the config-only rules and
// reports fields by their config key
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("wait_strategy", validWaitStrategy)
	_ = v.RegisterValidation("positive_duration", positiveDuration)

	return &Validator{validate: v}
}

func validWaitStrategy(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case WaitStrategyTimer, WaitStrategyPoll:
		return true
	}
	return false
}

func positiveDuration(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(time.Duration)
	return ok && d > 0
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError lists each failing key as "sequencer.poll_interval: must be a positive duration (value: -1s)"
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s: %s (value: '%v')", configKey(e), describe(e), e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// configKey drops the root struct name from the namespace
func configKey(e validator.FieldError) string {
	_, key, found := strings.Cut(e.Namespace(), ".")
	if !found {
		return e.Field()
	}
	return key
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + e.Param()
	case "wait_strategy":
		return fmt.Sprintf("must be %s or %s", WaitStrategyTimer, WaitStrategyPoll)
	case "positive_duration":
		return "must be a positive duration"
	default:
		return "failed " + e.Tag() + " validation"
	}
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
