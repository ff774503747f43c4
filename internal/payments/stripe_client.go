package payments

import (
	"context"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"

	pkgstripe "github.com/angelmondragon/storefront-backend/pkg/stripe"
)

// StripePaymentIntentClient exposes the subset of Stripe operations required by the payment service.
type StripePaymentIntentClient interface {
	Create(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Update(ctx context.Context, id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeClientWrapper struct{}

// NewStripeClient wraps the configured Stripe client so the payment service can be tested.
func NewStripeClient(api *pkgstripe.Client) StripePaymentIntentClient {
	if api == nil {
		return nil
	}
	return &stripeClientWrapper{}
}

func (w *stripeClientWrapper) Create(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if params != nil {
		params.Context = ctx
	}
	return paymentintent.New(params)
}

func (w *stripeClientWrapper) Update(ctx context.Context, id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if params != nil {
		params.Context = ctx
	}
	return paymentintent.Update(id, params)
}
