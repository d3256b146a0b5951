// Package validation — проверка строк справочника и входящих запросов через
// go-playground/validator с доменными тегами.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("validation failed")

// Тир: буква A..F и необязательный +/-.
var reTier = regexp.MustCompile(`^[A-F][+-]?$`)

func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("tier", validateTier)
	_ = v.RegisterValidation("notblank", validateNotBlank)
	return v
}

// Default — общий экземпляр; validator.Validate безопасен для конкурентного использования.
var Default = New()

func validateTier(fl validator.FieldLevel) bool {
	return reTier.MatchString(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Struct проверяет структуру и сворачивает ошибки поля в одну читаемую строку.
func Struct(s any) error {
	err := Default.Struct(s)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", f.Field(), f.Tag(), f.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Field(), f.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(parts, "; "))
}
