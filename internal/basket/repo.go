package basket

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository defines persistence operations for baskets and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByBuyerKey(ctx context.Context, buyerKey string) (*models.Basket, error)
	Create(ctx context.Context, basket *models.Basket) (*models.Basket, error)
	CreateItem(ctx context.Context, item *models.BasketItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	Delete(ctx context.Context, basketID uuid.UUID) error
	DeleteByBuyerKey(ctx context.Context, buyerKey string) error
	ReassignBuyerKey(ctx context.Context, basketID uuid.UUID, buyerKey string) error
	SetPaymentIntent(ctx context.Context, basketID uuid.UUID, intentID, clientSecret string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a basket repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByBuyerKey(ctx context.Context, buyerKey string) (*models.Basket, error) {
	var basket models.Basket
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Product").
		Where("buyer_key = ?", buyerKey).
		First(&basket).Error
	if err != nil {
		return nil, err
	}
	return &basket, nil
}

func (r *repository) Create(ctx context.Context, basket *models.Basket) (*models.Basket, error) {
	if err := r.db.WithContext(ctx).Create(basket).Error; err != nil {
		return nil, err
	}
	return basket, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.BasketItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.BasketItem{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity", quantity).Error
}

func (r *repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.BasketItem{}, "id = ?", itemID).Error
}

func (r *repository) Delete(ctx context.Context, basketID uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Delete(&models.BasketItem{}, "basket_id = ?", basketID).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Basket{}, "id = ?", basketID).Error
}

func (r *repository) DeleteByBuyerKey(ctx context.Context, buyerKey string) error {
	var basket models.Basket
	err := r.db.WithContext(ctx).Where("buyer_key = ?", buyerKey).First(&basket).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	return r.Delete(ctx, basket.ID)
}

func (r *repository) ReassignBuyerKey(ctx context.Context, basketID uuid.UUID, buyerKey string) error {
	return r.db.WithContext(ctx).
		Model(&models.Basket{}).
		Where("id = ?", basketID).
		UpdateColumn("buyer_key", buyerKey).Error
}

func (r *repository) SetPaymentIntent(ctx context.Context, basketID uuid.UUID, intentID, clientSecret string) error {
	return r.db.WithContext(ctx).
		Model(&models.Basket{}).
		Where("id = ?", basketID).
		Updates(map[string]any{
			"payment_intent_id": intentID,
			"client_secret":     clientSecret,
		}).Error
}
