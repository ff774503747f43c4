package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/basket"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

// Fallback when no dedupe window is configured. Redelivered events are only
// deduped within the window; the one-way status flip keeps late redeliveries
// harmless anyway.
const defaultEventDedupeTTL = 24 * time.Hour

type basketStore interface {
	FindByBuyerKey(ctx context.Context, buyerKey string) (*models.Basket, error)
	SetPaymentIntent(ctx context.Context, basketID uuid.UUID, intentID, clientSecret string) error
}

type orderStatusStore interface {
	FindByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

// Service reconciles baskets and orders with Stripe payment intents.
type Service interface {
	CreateOrUpdateIntent(ctx context.Context, buyerKey string) (*basket.BasketDTO, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type service struct {
	baskets       basketStore
	orders        orderStatusStore
	intents       StripePaymentIntentClient
	dedupe        redis.IdempotencyStore
	signingSecret string
	checkout      config.CheckoutConfig
	logg          *logger.Logger
}

// ServiceParams collects the payment service dependencies.
type ServiceParams struct {
	Baskets       basketStore
	Orders        orderStatusStore
	Intents       StripePaymentIntentClient
	Dedupe        redis.IdempotencyStore
	SigningSecret string
	Checkout      config.CheckoutConfig
	Logger        *logger.Logger
}

// NewService constructs a payment service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Baskets == nil {
		return nil, fmt.Errorf("basket store required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order status store required")
	}
	if params.Intents == nil {
		return nil, fmt.Errorf("payment intent client required")
	}
	if params.Dedupe == nil {
		return nil, fmt.Errorf("idempotency store required")
	}
	if strings.TrimSpace(params.SigningSecret) == "" {
		return nil, fmt.Errorf("webhook signing secret required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		baskets:       params.Baskets,
		orders:        params.Orders,
		intents:       params.Intents,
		dedupe:        params.Dedupe,
		signingSecret: params.SigningSecret,
		checkout:      params.Checkout,
		logg:          params.Logger,
	}, nil
}

// CreateOrUpdateIntent makes sure the buyer's basket carries a Stripe payment
// intent priced at the current basket total. The first intent created for a
// basket sticks; later calls only adjust the amount.
func (s *service) CreateOrUpdateIntent(ctx context.Context, buyerKey string) (*basket.BasketDTO, error) {
	if strings.TrimSpace(buyerKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer key required")
	}

	held, err := s.baskets.FindByBuyerKey(ctx, buyerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "basket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket")
	}

	subtotal := held.SubtotalCents()
	amount := int64(subtotal + s.deliveryFee(subtotal))

	if held.PaymentIntentID == nil {
		intent, err := s.intents.Create(ctx, &stripe.PaymentIntentParams{
			Amount:             stripe.Int64(amount),
			Currency:           stripe.String(string(stripe.CurrencyUSD)),
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment intent")
		}
		if err := s.baskets.SetPaymentIntent(ctx, held.ID, intent.ID, intent.ClientSecret); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store payment intent")
		}
		held.PaymentIntentID = &intent.ID
		held.ClientSecret = &intent.ClientSecret
	} else {
		_, err := s.intents.Update(ctx, *held.PaymentIntentID, &stripe.PaymentIntentParams{
			Amount: stripe.Int64(amount),
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment intent")
		}
	}

	return basket.NewBasketDTO(held), nil
}

// HandleWebhook verifies, dedupes and applies a Stripe webhook delivery. A
// signature mismatch fails closed; an event whose intent matches no order is
// acknowledged without effect.
func (s *service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.signingSecret)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid webhook signature")
	}

	ttl := s.checkout.WebhookDedupeTTL
	if ttl <= 0 {
		ttl = defaultEventDedupeTTL
	}
	key := s.dedupe.IdempotencyKey("stripe", event.ID)
	claimed, err := s.dedupe.SetNX(ctx, key, 1, ttl)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim webhook event")
	}
	if !claimed {
		s.logg.Info(s.logg.WithField(ctx, "event_id", event.ID), "duplicate webhook event ignored")
		return nil
	}

	if err := s.applyEvent(ctx, event); err != nil {
		// Release the claim so Stripe's retry can take another run at it.
		if delErr := s.dedupe.Del(ctx, key); delErr != nil {
			s.logg.Error(ctx, "release webhook claim failed", delErr)
		}
		return err
	}
	return nil
}

func (s *service) applyEvent(ctx context.Context, event stripe.Event) error {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode webhook charge")
	}
	if charge.Status != stripe.ChargeStatusSucceeded {
		return nil
	}
	if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
		return nil
	}

	ctx = s.logg.WithField(ctx, "payment_intent_id", charge.PaymentIntent.ID)
	order, err := s.orders.FindByPaymentIntentID(ctx, charge.PaymentIntent.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Warn(ctx, "webhook intent matches no order")
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order by intent")
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, enums.OrderStatusPaymentReceived); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order paid")
	}
	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "order payment received")
	return nil
}

func (s *service) deliveryFee(subtotalCents int) int {
	if subtotalCents > s.checkout.FreeDeliveryThresholdCents {
		return 0
	}
	return s.checkout.DeliveryFeeCents
}
