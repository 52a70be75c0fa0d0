package handler

import (
	"errors"
	"io"
	"net/http"

	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
)

const maxWebhookBodyBytes = 64 * 1024

type BillingHandler struct {
	billingUsecase usecase.BillingUsecase
}

func NewBillingHandler(billingUsecase usecase.BillingUsecase) *BillingHandler {
	return &BillingHandler{
		billingUsecase: billingUsecase,
	}
}

// StripeWebhook needs the raw body; the signature covers the exact bytes
func (h *BillingHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.billingUsecase.HandleStripeWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSignature):
			response.Error(w, http.StatusBadRequest, "Invalid signature", nil)
		case errors.Is(err, usecase.ErrInvalidPayload):
			response.Error(w, http.StatusBadRequest, "Invalid payload", nil)
		default:
			response.DatabaseError(w, "Failed to process webhook", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Webhook processed", result)
}
