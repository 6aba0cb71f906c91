package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Weathers lists the conditions a session may be configured with
var Weathers = []string{"sunny", "cloudy", "rain", "snow", "fog"}

// Validator checks config structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the game-specific rules on top of the stock ones
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("weather", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, w := range Weathers {
			if value == w {
				return true
			}
		}
		return false
	})
	return &Validator{validate: v}
}

// Validate returns one line per failing field
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	lines := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		rule := e.Tag()
		if e.Param() != "" {
			rule += "=" + e.Param()
		}
		lines = append(lines, fmt.Sprintf("%s: %v violates %s", e.Namespace(), e.Value(), rule))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(lines, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
