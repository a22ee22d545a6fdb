package validators

import (
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo's Validator interface
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom rules registered
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterValidation("password", passwordRule)
	return &Validator{validate: v}
}

// Validate runs struct validation and maps failures to a 400
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// passwordRule enforces the password complexity policy: at least 6
// characters with a lowercase letter, an uppercase letter and a digit.
// Go's regexp has no lookaheads, so the classes are checked by hand.
func passwordRule(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 6 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
