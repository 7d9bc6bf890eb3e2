// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator wraps a shared validator instance for struct tag validation.
type requestValidator struct {
	validate *playground.Validate
}

// New constructs the echo.Validator used by the HTTP server.
func New() echo.Validator {
	return &requestValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks a bound request DTO against its struct tags. Handlers
// convert the returned error into the response envelope themselves.
func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
