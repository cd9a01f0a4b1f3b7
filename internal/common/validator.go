package common

import "unicode/utf8"

// ValidationError carries the first rule that failed. Only one message is
// reported back to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Validator records the first failed check and ignores the rest, so the
// order of Check calls decides which message wins.
type Validator struct {
	Field   string
	Message string
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Valid() bool {
	return v.Message == ""
}

func (v *Validator) AddError(field, message string) {
	if v.Message == "" {
		v.Field = field
		v.Message = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// CheckStringLength counts characters, not bytes.
func (v *Validator) CheckStringLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

func (v *Validator) ValidationError() error {
	return ValidationError{Field: v.Field, Message: v.Message}
}
