// Package payments creates online payment links and reads payment status
// back from MercadoPago.
package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
)

const StatusApproved = "approved"

type LinkInput struct {
	Title       string
	Amount      int64
	Reference   string
	NotifyURL   string
	Description string
}

type Link struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Payment struct {
	ID        string
	Status    string
	Reference string
	Amount    int64
}

type Gateway interface {
	CreateLink(ctx context.Context, in LinkInput) (*Link, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
}

type MercadoPago struct {
	preferences preference.Client
	payments    payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) CreateLink(ctx context.Context, in LinkInput) (*Link, error) {
	res, err := m.preferences.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{{
			Title:       in.Title,
			Description: in.Description,
			Quantity:    1,
			UnitPrice:   float64(in.Amount),
		}},
		ExternalReference: in.Reference,
		NotificationURL:   in.NotifyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrBusiness("payment_provider_error"), err)
	}
	return &Link{ID: res.ID, URL: res.InitPoint}, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, id string) (*Payment, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_payment_id")
	}

	res, err := m.payments.Get(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrBusiness("payment_provider_error"), err)
	}

	return &Payment{
		ID:        strconv.Itoa(res.ID),
		Status:    res.Status,
		Reference: res.ExternalReference,
		Amount:    int64(res.TransactionAmount),
	}, nil
}

// ContractReference ties a payment back to studio and contract.
func ContractReference(studioID, contractID uint) string {
	return fmt.Sprintf("contract:%d:%d", studioID, contractID)
}

func ParseContractReference(ref string) (studioID, contractID uint, ok bool) {
	parts := strings.Split(ref, ":")
	if len(parts) != 3 || parts[0] != "contract" {
		return 0, 0, false
	}
	s, err1 := strconv.ParseUint(parts[1], 10, 64)
	c, err2 := strconv.ParseUint(parts[2], 10, 64)
	if err1 != nil || err2 != nil || s == 0 || c == 0 {
		return 0, 0, false
	}
	return uint(s), uint(c), true
}

// ExternalRef is the idempotency key stored on the recorded transaction.
func ExternalRef(paymentID string) string {
	return "mp:" + paymentID
}
