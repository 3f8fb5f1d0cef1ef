package viatico

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the request against the same constraints the entry form
// enforces (required fields, email format, account-type enum). It is an
// advisory pre-submit check; mutators never call it.
func (r *Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("field %s fails constraint %q", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("validating request: %w", err)
}
