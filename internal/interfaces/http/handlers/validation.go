package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var platformPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// RegisterValidations installs custom binding rules on gin's validator
// engine. Platform identifiers are lowercase slugs ("android", "ios",
// "web"); the device uuid stays free-form because clients generate it.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		return platformPattern.MatchString(fl.Field().String())
	})
}
