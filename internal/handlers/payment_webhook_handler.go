package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	ucContract "github.com/BruksfildServices01/studio-manager/internal/usecase/contract"
)

type PaymentWebhookHandler struct {
	notify *ucContract.HandlePaymentNotification
}

func NewPaymentWebhookHandler(notify *ucContract.HandlePaymentNotification) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{notify: notify}
}

// paymentNotification covers the webhook body; data.id arrives as a string
// or a bare number depending on the notification version.
type paymentNotification struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// Notify answers 200 for every notification it understood, including the
// ones it decided not to record, so the provider stops retrying. Provider
// errors surface as 5xx and are retried.
func (h *PaymentWebhookHandler) Notify(c *gin.Context) {
	kind := c.Query("type")
	if kind == "" {
		kind = c.Query("topic")
	}
	id := c.Query("data.id")
	if id == "" {
		id = c.Query("id")
	}

	if c.Request.ContentLength != 0 {
		var body paymentNotification
		if err := c.ShouldBindJSON(&body); err == nil {
			if kind == "" {
				kind = body.Type
			}
			if kind == "" {
				kind = body.Topic
			}
			if id == "" && len(body.Data.ID) > 0 {
				id = strings.Trim(string(body.Data.ID), `"`)
			}
		}
	}

	if kind != "" && kind != "payment" {
		c.JSON(http.StatusOK, ucContract.WebhookResult{Reason: "ignored_" + kind})
		return
	}
	if id == "" {
		httperr.BadRequest(c, "missing_payment_id", "Thiếu mã thanh toán.")
		return
	}

	res, err := h.notify.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "payment_provider_error")
		return
	}

	c.JSON(http.StatusOK, res)
}
