package validators

import (
	"net/mail"
	"strings"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
)

// NormalizeEmail lowercases a bare address. An empty input stays empty;
// display names and malformed addresses yield invalid_email.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", httperr.ErrBusiness("invalid_email")
	}

	at := strings.LastIndex(email, "@")
	if !strings.Contains(email[at+1:], ".") {
		return "", httperr.ErrBusiness("invalid_email")
	}
	return email, nil
}
