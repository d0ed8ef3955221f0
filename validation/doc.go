// Package validation provides input validation for meetscribe config and
// API requests.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// used for configuration; programmatic validation for request-level checks.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Language string `validate:"required,len=2"`
//	    Workers  int    `validate:"min=1,max=16"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New().Required("input", path)
//	err := v.Validate()
package validation
