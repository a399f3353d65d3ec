package customer

import (
	"strings"
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/validators"
)

// CustomerInput is the edit form; create and update share it.
type CustomerInput struct {
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	WeddingDate *time.Time `json:"wedding_date"`
}

// apply validates in and copies it onto c.
func (in CustomerInput) apply(c *models.Customer) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return httperr.ErrBusiness("missing_name")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return httperr.ErrBusiness("missing_phone")
	}

	phone, err := domain.NormalizePhone(in.Phone)
	if err != nil {
		return err
	}
	email, err := validators.NormalizeEmail(in.Email)
	if err != nil {
		return err
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return err
	}

	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Source = strings.TrimSpace(in.Source)
	c.Status = string(status)
	c.WeddingDate = in.WeddingDate
	return nil
}
