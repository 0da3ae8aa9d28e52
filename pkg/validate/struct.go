package validate

import "github.com/go-playground/validator/v10"

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the shared tag-based validator over a request struct.
func Struct(v any) error {
	return structValidator.Struct(v)
}
