package contract

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/payments"
)

type CreatePaymentLink struct {
	repo      domain.Repository
	gateway   payments.Gateway
	notifyURL string
	audit     *audit.Dispatcher
}

// NewCreatePaymentLink accepts a nil gateway; Execute then reports
// payments_disabled.
func NewCreatePaymentLink(
	repo domain.Repository,
	gateway payments.Gateway,
	notifyURL string,
	audit *audit.Dispatcher,
) *CreatePaymentLink {
	return &CreatePaymentLink{repo: repo, gateway: gateway, notifyURL: notifyURL, audit: audit}
}

// Execute asks the provider for a checkout link covering the outstanding
// amount, or a smaller amount when one is given.
func (uc *CreatePaymentLink) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	contractID uint,
	amount int64,
) (*payments.Link, error) {

	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	c, err := uc.repo.Get(ctx, studioID, contractID)
	if err != nil {
		return nil, err
	}
	if domain.Status(c.Status) == domain.StatusCancelled {
		return nil, httperr.ErrBusiness("contract_closed")
	}

	outstanding := c.Outstanding()
	if outstanding == 0 {
		return nil, httperr.ErrBusiness("already_paid")
	}
	if amount == 0 {
		amount = outstanding
	}
	if amount < 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}
	if amount > outstanding {
		return nil, httperr.ErrBusiness("overpayment")
	}

	link, err := uc.gateway.CreateLink(ctx, payments.LinkInput{
		Title:       fmt.Sprintf("Hợp đồng %s", c.Code),
		Description: c.Customer.Name,
		Amount:      amount,
		Reference:   payments.ContractReference(studioID, c.ID),
		NotifyURL:   uc.notifyURL,
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   "payment_link_created",
		Entity:   "contract",
		EntityID: &c.ID,
		Metadata: map[string]any{"amount": amount, "preference": link.ID},
	})

	return link, nil
}
