// Package validator wraps go-playground/validator so handlers can validate
// transport DTOs through an injected dependency instead of a package global.
package validator

import "github.com/go-playground/validator/v10"

// Validator validates structs based on their `validate` tags.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator. Custom domain rules can be added with
// RegisterValidation before it is shared with the modules.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct validates a struct against its tags.
func (val *Validator) Struct(s any) error {
	return val.v.Struct(s)
}

// Var validates a single value against a tag expression.
func (val *Validator) Var(field any, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function under a tag.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
