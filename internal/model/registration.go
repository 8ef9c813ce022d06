package model

import "errors"

// MsgAllFieldsRequired is reported when any required registration field is empty.
const MsgAllFieldsRequired = "All fields are required"

// MsgConfirmationMismatch is reported when passwordConfirmation differs from password.
const MsgConfirmationMismatch = "Password confirmation does not match"

// RegisterParams is the registration request payload.
type RegisterParams struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Address              string `json:"address"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation,omitempty"`
	FileName             string `json:"fileName"`
	ContentType          string `json:"contentType"`
}

// RegistrationResult is the outcome of a successful registration.
type RegistrationResult struct {
	User      User
	UploadURL string
}

// FieldError describes a business-rule violation tied to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError signals malformed client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// DuplicateEmailError is returned when the email is already registered.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return "email already registered: " + e.Email
}

// Unwrap lets errors.Is match ErrEmailTaken.
func (e *DuplicateEmailError) Unwrap() error {
	return ErrEmailTaken
}

// FieldErrors converts the error into its client-facing field errors.
func (e *DuplicateEmailError) FieldErrors() []FieldError {
	return []FieldError{{Field: "email", Message: "Email already registered."}}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
