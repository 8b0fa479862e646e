package chatbot

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/MarcinSar/veteyealk/airtable"
)

var validateOnce sync.Once

var serialChars = regexp.MustCompile(`^\w+$`)

// serialNumber accepts the serial formats users actually type, with or
// without the SN prefix.
func serialNumber(fl validator.FieldLevel) bool {
	cleaned := airtable.CleanSerial(fl.Field().String())
	return cleaned != "" && serialChars.MatchString(cleaned)
}

// RegisterValidations installs the assistant's custom binding rules on
// gin's validator engine.
func RegisterValidations() {
	validateOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := v.RegisterValidation("serial", serialNumber); err != nil {
				log.Fatalf("registering serial validation: %v", err)
			}
		}
	})
}
