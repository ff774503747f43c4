package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the catalog listing. Its price is advisory only: order lines carry
// their own snapshot taken at placement time.
type Product struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"column:name;not null;index"`
	Description     string    `gorm:"column:description;not null"`
	PriceCents      int       `gorm:"column:price_cents;not null"`
	PictureURL      string    `gorm:"column:picture_url;not null"`
	Type            string    `gorm:"column:type;not null;index"`
	Brand           string    `gorm:"column:brand;not null;index"`
	QuantityInStock int       `gorm:"column:quantity_in_stock;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
