package basket

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the basket operations.
type Service interface {
	Get(ctx context.Context, buyerKey string) (*BasketDTO, error)
	AddItem(ctx context.Context, buyerKey string, productID uuid.UUID, quantity int) (*BasketDTO, error)
	RemoveItem(ctx context.Context, buyerKey string, productID uuid.UUID, quantity int) (*BasketDTO, error)
	MergeOnLogin(ctx context.Context, anonymousKey, username string) error
}

type service struct {
	repo     Repository
	products productReader
	tx       txRunner
	logg     *logger.Logger
}

// ServiceParams collects the basket service dependencies.
type ServiceParams struct {
	Repo     Repository
	Products productReader
	Tx       txRunner
	Logger   *logger.Logger
}

// NewService constructs a basket service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("basket repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		tx:       params.Tx,
		logg:     params.Logger,
	}, nil
}

// Get returns the buyer's basket, or nil when none exists.
func (s *service) Get(ctx context.Context, buyerKey string) (*BasketDTO, error) {
	if strings.TrimSpace(buyerKey) == "" {
		return nil, nil
	}
	basket, err := s.repo.FindByBuyerKey(ctx, buyerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket")
	}
	return NewBasketDTO(basket), nil
}

func (s *service) AddItem(ctx context.Context, buyerKey string, productID uuid.UUID, quantity int) (*BasketDTO, error) {
	if strings.TrimSpace(buyerKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer key required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	var out *BasketDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		held, err := repo.FindByBuyerKey(ctx, buyerKey)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket")
			}
			held, err = repo.Create(ctx, &models.Basket{ID: uuid.New(), BuyerKey: buyerKey})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create basket")
			}
		}

		if line := findLine(held, productID); line != nil {
			if err := repo.UpdateItemQuantity(ctx, line.ID, line.Quantity+quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update basket line")
			}
		} else {
			item := &models.BasketItem{
				ID:        uuid.New(),
				BasketID:  held.ID,
				ProductID: product.ID,
				Quantity:  quantity,
			}
			if err := repo.CreateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append basket line")
			}
		}

		fresh, err := repo.FindByBuyerKey(ctx, buyerKey)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload basket")
		}
		out = NewBasketDTO(fresh)
		return nil
	})
	if err != nil {
		return nil, coded(err)
	}
	return out, nil
}

// RemoveItem decrements a line, clamping to the held quantity so oversized
// removals empty the line rather than fail.
func (s *service) RemoveItem(ctx context.Context, buyerKey string, productID uuid.UUID, quantity int) (*BasketDTO, error) {
	if strings.TrimSpace(buyerKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer key required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var out *BasketDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		held, err := repo.FindByBuyerKey(ctx, buyerKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "basket not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket")
		}

		if line := findLine(held, productID); line != nil {
			remaining := line.Quantity - quantity
			if remaining > 0 {
				if err := repo.UpdateItemQuantity(ctx, line.ID, remaining); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update basket line")
				}
			} else {
				if err := repo.DeleteItem(ctx, line.ID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove basket line")
				}
			}
		}

		fresh, err := repo.FindByBuyerKey(ctx, buyerKey)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload basket")
		}
		out = NewBasketDTO(fresh)
		return nil
	})
	if err != nil {
		return nil, coded(err)
	}
	return out, nil
}

// MergeOnLogin moves the anonymous basket onto the username. The anonymous
// basket wins: any basket the user held from a previous session is discarded.
func (s *service) MergeOnLogin(ctx context.Context, anonymousKey, username string) error {
	anonymousKey = strings.TrimSpace(anonymousKey)
	username = strings.TrimSpace(username)
	if anonymousKey == "" || username == "" || anonymousKey == username {
		return nil
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		anon, err := repo.FindByBuyerKey(ctx, anonymousKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load anonymous basket")
		}

		if err := repo.DeleteByBuyerKey(ctx, username); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard prior basket")
		}
		if err := repo.ReassignBuyerKey(ctx, anon.ID, username); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reassign basket")
		}
		return nil
	})
	if err != nil {
		return coded(err)
	}
	return nil
}

func findLine(basket *models.Basket, productID uuid.UUID) *models.BasketItem {
	for i := range basket.Items {
		if basket.Items[i].ProductID == productID {
			return &basket.Items[i]
		}
	}
	return nil
}

func coded(err error) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "basket transaction")
}
