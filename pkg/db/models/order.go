package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Order is the immutable record produced by converting a basket. Only Status
// ever changes after creation, and only via the payment webhook.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerKey         string            `gorm:"column:buyer_key;type:text;not null;index"`
	Status           enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	ShippingAddress  types.Address     `gorm:"embedded;embeddedPrefix:ship_"`
	SubtotalCents    int               `gorm:"column:subtotal_cents;not null"`
	DeliveryFeeCents int               `gorm:"column:delivery_fee_cents;not null"`
	PaymentIntentID  *string           `gorm:"column:payment_intent_id;index"`
	Items            []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TotalCents is the amount charged to the buyer.
func (o *Order) TotalCents() int {
	return o.SubtotalCents + o.DeliveryFeeCents
}

// OrderItem snapshots the product at placement time so later catalog edits
// cannot change order history.
type OrderItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name       string    `gorm:"column:name;not null"`
	PictureURL string    `gorm:"column:picture_url;not null"`
	PriceCents int       `gorm:"column:price_cents;not null"`
	Quantity   int       `gorm:"column:quantity;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
