package handler

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	validate *validator.Validate
}

// NewValidator returns an echo.Validator that reports fields by their json name.
func NewValidator() echo.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
