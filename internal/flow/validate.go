package flow

import (
	"net/mail"
	"strings"

	"signin/internal/domain"
)

// Validation messages.
const (
	MsgEmailRequired    = "Email is required"
	MsgPasswordRequired = "Password is required"
	MsgEmailInvalid     = "Enter a valid email address"
)

// Validate runs the pre-flight checks on creds. It returns nil when the
// credentials may be sent.
func Validate(creds domain.Credentials) *domain.Failure {
	switch {
	case strings.TrimSpace(creds.Email) == "":
		return domain.NewValidationFailure(MsgEmailRequired)
	case creds.Password == "":
		return domain.NewValidationFailure(MsgPasswordRequired)
	case !validEmail(creds.Email):
		return domain.NewValidationFailure(MsgEmailInvalid)
	}
	return nil
}

// validEmail accepts a bare addr-spec with a dotted domain, e.g. a@b.com.
// Display-name forms such as "A <a@b.com>" are rejected.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domainPart := s[at+1:]
	return at > 0 && strings.Contains(domainPart, ".") &&
		!strings.HasPrefix(domainPart, ".") && !strings.HasSuffix(domainPart, ".")
}
