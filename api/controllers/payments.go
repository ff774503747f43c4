package controllers

import (
	"io"
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	paymentsvc "github.com/angelmondragon/storefront-backend/internal/payments"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Stripe caps event payloads well under this; anything bigger is not ours.
const maxWebhookBodyBytes = 1 << 16

// PaymentIntentCreateOrUpdate attaches a payment intent to the buyer's basket
// and returns the basket with the client secret the web client confirms.
func PaymentIntentCreateOrUpdate(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto, err := svc.CreateOrUpdateIntent(r.Context(), middleware.UsernameFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// StripeWebhook receives Stripe event deliveries. The raw body is handed to
// the service untouched because the signature covers the exact bytes.
func StripeWebhook(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read webhook body"))
			return
		}

		if err := svc.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
