package models

import (
	"time"

	"github.com/google/uuid"
)

// Basket is the buyer-keyed shopping basket. At most one row exists per buyer
// key; the key is either a username or an anonymous cookie identifier.
type Basket struct {
	ID              uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerKey        string       `gorm:"column:buyer_key;type:text;not null;uniqueIndex"`
	PaymentIntentID *string      `gorm:"column:payment_intent_id"`
	ClientSecret    *string      `gorm:"column:client_secret"`
	Items           []BasketItem `gorm:"foreignKey:BasketID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

// SubtotalCents sums price-times-quantity over the loaded items. Items must be
// preloaded with their product.
func (b *Basket) SubtotalCents() int {
	total := 0
	for _, item := range b.Items {
		if item.Product != nil {
			total += item.Product.PriceCents * item.Quantity
		}
	}
	return total
}

// BasketItem is a single product line inside a basket. Quantity is always >= 1;
// a line that would drop to zero is deleted instead.
type BasketItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BasketID  uuid.UUID `gorm:"column:basket_id;type:uuid;not null;uniqueIndex:idx_basket_product"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_basket_product"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
