package customer

import (
	"regexp"
	"strings"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
)

type Status string

const (
	StatusHot        Status = "hot"
	StatusPotential  Status = "potential"
	StatusInterested Status = "interested"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusInterested, nil
	case StatusHot, StatusPotential, StatusInterested:
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

// NormalizePhone strips separators and checks the remaining digits.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "").Replace(phone)
	if !phonePattern.MatchString(cleaned) {
		return "", httperr.ErrBusiness("invalid_phone")
	}
	return cleaned, nil
}
