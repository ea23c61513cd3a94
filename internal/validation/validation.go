// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required or non-blank fields) defined in struct tags
// and extracts validation errors into a format the client can
// understand. It also holds the JSON coercion rules applied to
// loosely typed request values.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
//
// Field names in reported errors are the JSON names ("text", not "Text"),
// and the non-standard `notblank` tag is available: it rejects strings
// that are empty after trimming whitespace.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "query"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})

		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}

		validate = v
	})

	return validate
}
