package contact

import "fmt"

// Validation error codes.
const (
	CodeMissingField = "missing_field"
	CodeInvalidEmail = "invalid_email"
)

// ValidationError is a client-caused rejection. Its message is safe to
// surface verbatim.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingField = &ValidationError{Code: CodeMissingField, Message: "Fill all required fields"}
	ErrInvalidEmail = &ValidationError{Code: CodeInvalidEmail, Message: "Invalid email"}
)

// StoreError wraps a persistence failure. The submission was not stored
// and notification was never attempted.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store submission: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// MailError wraps a notification failure. The submission IS durably
// stored by the time this is returned; there is no rollback.
type MailError struct {
	Err error
}

func (e *MailError) Error() string {
	return fmt.Sprintf("send notification: %v", e.Err)
}

func (e *MailError) Unwrap() error {
	return e.Err
}
