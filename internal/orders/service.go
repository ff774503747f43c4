package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/basket"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/users"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stockKeeper interface {
	WithTx(tx *gorm.DB) catalog.Repository
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error)
}

type basketStore interface {
	WithTx(tx *gorm.DB) basket.Repository
	FindByBuyerKey(ctx context.Context, buyerKey string) (*models.Basket, error)
	Delete(ctx context.Context, basketID uuid.UUID) error
}

type addressBook interface {
	WithTx(tx *gorm.DB) *users.Repository
}

// Service exposes checkout and order history operations.
type Service interface {
	Place(ctx context.Context, buyerKey string, input PlaceOrderInput) (*OrderDTO, error)
	List(ctx context.Context, buyerKey string) ([]OrderDTO, error)
	Get(ctx context.Context, buyerKey string, orderID uuid.UUID) (*OrderDTO, error)
}

type service struct {
	repo     Repository
	baskets  basketStore
	stock    stockKeeper
	users    addressBook
	tx       txRunner
	checkout config.CheckoutConfig
	logg     *logger.Logger
}

// ServiceParams collects the orders service dependencies.
type ServiceParams struct {
	Repo     Repository
	Baskets  basketStore
	Stock    stockKeeper
	Users    addressBook
	Tx       txRunner
	Checkout config.CheckoutConfig
	Logger   *logger.Logger
}

// NewService constructs an orders service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Baskets == nil {
		return nil, fmt.Errorf("basket store required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock keeper required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("address book required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     params.Repo,
		baskets:  params.Baskets,
		stock:    params.Stock,
		users:    params.Users,
		tx:       params.Tx,
		checkout: params.Checkout,
		logg:     params.Logger,
	}, nil
}

// Place converts the buyer's basket into an order. Stock is decremented line
// by line inside one transaction; any line without enough stock aborts the
// whole placement.
func (s *service) Place(ctx context.Context, buyerKey string, input PlaceOrderInput) (*OrderDTO, error) {
	if strings.TrimSpace(buyerKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer key required")
	}
	address := input.ShippingAddress.Normalize()
	if err := requireAddress(address); err != nil {
		return nil, err
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		baskets := s.baskets.WithTx(tx)
		stock := s.stock.WithTx(tx)
		repo := s.repo.WithTx(tx)

		held, err := baskets.FindByBuyerKey(ctx, buyerKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "basket not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket")
		}
		if len(held.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "basket is empty")
		}

		subtotal := 0
		items := make([]models.OrderItem, 0, len(held.Items))
		for _, line := range held.Items {
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeDependency, "basket line missing product")
			}
			ok, err := stock.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
					WithDetails(map[string]any{"productId": line.ProductID, "name": line.Product.Name})
			}
			subtotal += line.Product.PriceCents * line.Quantity
			items = append(items, models.OrderItem{
				ID:         uuid.New(),
				ProductID:  line.ProductID,
				Name:       line.Product.Name,
				PictureURL: line.Product.PictureURL,
				PriceCents: line.Product.PriceCents,
				Quantity:   line.Quantity,
			})
		}

		order := &models.Order{
			ID:               uuid.New(),
			BuyerKey:         buyerKey,
			Status:           enums.OrderStatusPending,
			ShippingAddress:  address,
			SubtotalCents:    subtotal,
			DeliveryFeeCents: s.deliveryFee(subtotal),
			PaymentIntentID:  held.PaymentIntentID,
			Items:            items,
		}
		placed, err = repo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := baskets.Delete(ctx, held.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete basket")
		}

		if input.SaveAddress {
			if err := s.saveAddress(ctx, s.users.WithTx(tx), buyerKey, address); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, coded(err)
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id":    placed.ID.String(),
		"buyer_key":   buyerKey,
		"total_cents": placed.TotalCents(),
	}), "order placed")
	return NewOrderDTO(placed), nil
}

// List returns the buyer's orders, newest first.
func (s *service) List(ctx context.Context, buyerKey string) ([]OrderDTO, error) {
	if strings.TrimSpace(buyerKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer key required")
	}
	orders, err := s.repo.ListByBuyerKey(ctx, buyerKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return NewOrderDTOs(orders), nil
}

// Get returns one of the buyer's orders. Orders belonging to other buyers are
// indistinguishable from missing ones.
func (s *service) Get(ctx context.Context, buyerKey string, orderID uuid.UUID) (*OrderDTO, error) {
	if strings.TrimSpace(buyerKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer key required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindForBuyer(ctx, orderID, buyerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return NewOrderDTO(order), nil
}

func (s *service) deliveryFee(subtotalCents int) int {
	if subtotalCents > s.checkout.FreeDeliveryThresholdCents {
		return 0
	}
	return s.checkout.DeliveryFeeCents
}

// saveAddress upserts the buyer's saved address as part of the placement
// transaction, so a failed save rolls the whole order back.
func (s *service) saveAddress(ctx context.Context, book *users.Repository, username string, address types.Address) error {
	user, err := book.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if err := book.SaveAddress(ctx, user.ID, address); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save address")
	}
	return nil
}

func requireAddress(address types.Address) error {
	required := []struct {
		field string
		value string
	}{
		{"fullName", address.FullName},
		{"address1", address.Address1},
		{"city", address.City},
		{"state", address.State},
		{"zip", address.Zip},
		{"country", address.Country},
	}
	missing := make([]string, 0, len(required))
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.field)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "incomplete shipping address").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}

func coded(err error) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order transaction")
}
