package contract

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/payments"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

// WebhookResult tells the provider handler what happened; every outcome
// is acknowledged so the provider stops retrying.
type WebhookResult struct {
	Recorded   bool   `json:"recorded"`
	Reason     string `json:"reason,omitempty"`
	ContractID uint   `json:"contract_id,omitempty"`
}

type HandlePaymentNotification struct {
	repo    domain.Repository
	gateway payments.Gateway
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewHandlePaymentNotification(
	repo domain.Repository,
	gateway payments.Gateway,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log *slog.Logger,
) *HandlePaymentNotification {
	return &HandlePaymentNotification{repo: repo, gateway: gateway, audit: audit, metrics: m, log: log}
}

// Execute fetches the payment from the provider instead of trusting the
// notification body, then records it once per payment id.
func (uc *HandlePaymentNotification) Execute(ctx context.Context, paymentID string) (*WebhookResult, error) {
	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	p, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != payments.StatusApproved {
		return &WebhookResult{Reason: "status_" + p.Status}, nil
	}

	studioID, contractID, ok := payments.ParseContractReference(p.Reference)
	if !ok {
		uc.log.Warn("payment with unknown reference",
			slog.String("payment_id", p.ID),
			slog.String("reference", p.Reference),
		)
		return &WebhookResult{Reason: "unknown_reference"}, nil
	}

	ref := payments.ExternalRef(p.ID)
	seen, err := uc.repo.HasExternalPayment(ctx, ref)
	if err != nil {
		return nil, err
	}
	if seen {
		return &WebhookResult{Reason: "already_recorded", ContractID: contractID}, nil
	}

	c, err := uc.repo.Get(ctx, studioID, contractID)
	if err != nil {
		return nil, err
	}

	if _, err := record(ctx, uc.repo, c, p.Amount, timezone.Now(), "MercadoPago #"+p.ID, &ref); err != nil {
		if httperr.IsBusiness(err, "already_recorded") {
			return &WebhookResult{Reason: "already_recorded", ContractID: c.ID}, nil
		}
		if code := httperr.BusinessCode(err); code != "" {
			uc.log.Warn("online payment not recorded",
				slog.String("payment_id", p.ID),
				slog.Uint64("contract_id", uint64(c.ID)),
				slog.String("reason", code),
			)
			return &WebhookResult{Reason: code, ContractID: c.ID}, nil
		}
		return nil, err
	}

	uc.metrics.Payment("online")
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		Action:   "contract_payment_recorded",
		Entity:   "contract",
		EntityID: &c.ID,
		Metadata: map[string]any{"amount": p.Amount, "payment_id": p.ID, "paid": c.PaidAmount},
	})

	return &WebhookResult{Recorded: true, ContractID: c.ID}, nil
}
