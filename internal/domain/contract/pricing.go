package contract

import (
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// Recalculate sets TotalAmount from package price, extra services and
// discount. The discount may not exceed the subtotal and the total may not
// drop below what was already paid.
func Recalculate(c *models.Contract) error {
	subtotal := c.PackagePrice
	for _, s := range c.AdditionalServices {
		subtotal += s.LineTotal()
	}

	if c.Discount < 0 || c.Discount > subtotal {
		return httperr.ErrBusiness("invalid_discount")
	}

	total := subtotal - c.Discount
	if total < c.PaidAmount {
		return httperr.ErrBusiness("total_below_paid")
	}

	c.TotalAmount = total
	return nil
}

// RegisterPayment adds amount to PaidAmount after bound checks.
func RegisterPayment(c *models.Contract, amount int64) error {
	if amount <= 0 {
		return httperr.ErrBusiness("invalid_amount")
	}
	if Status(c.Status) == StatusCancelled {
		return httperr.ErrBusiness("contract_closed")
	}
	if c.PaidAmount+amount > c.TotalAmount {
		return httperr.ErrBusiness("overpayment")
	}

	c.PaidAmount += amount
	return nil
}
