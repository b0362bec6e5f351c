package contact

import (
	"regexp"
	"time"
)

// emailPattern is deliberately loose: one @, no whitespace, a dot in the
// domain part. Anything stricter rejects real addresses.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is one contact-form entry. Immutable once persisted; the
// store exposes no update or delete path.
type Submission struct {
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

// Input is a candidate submission as received from the client, before
// validation.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks presence of all three fields, then the email shape.
// Field values pass through verbatim; no trimming or sanitization happens
// here. The returned Submission carries a server-assigned UTC timestamp.
func (in Input) Validate(now time.Time) (*Submission, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, ErrMissingField
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, ErrInvalidEmail
	}
	return &Submission{
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: now.UTC(),
	}, nil
}
