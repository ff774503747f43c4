package basket

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// ItemDTO is a single basket line joined with its product snapshot.
type ItemDTO struct {
	ProductID  uuid.UUID `json:"productId"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price"`
	PictureURL string    `json:"pictureUrl"`
	Brand      string    `json:"brand"`
	Type       string    `json:"type"`
	Quantity   int       `json:"quantity"`
}

// BasketDTO is the basket shape returned to clients.
type BasketDTO struct {
	ID              uuid.UUID `json:"id"`
	BuyerKey        string    `json:"buyerId"`
	Items           []ItemDTO `json:"items"`
	SubtotalCents   int       `json:"subtotal"`
	PaymentIntentID *string   `json:"paymentIntentId,omitempty"`
	ClientSecret    *string   `json:"clientSecret,omitempty"`
}

// NewBasketDTO maps the persisted basket, items preloaded with products.
func NewBasketDTO(basket *models.Basket) *BasketDTO {
	if basket == nil {
		return nil
	}
	items := make([]ItemDTO, 0, len(basket.Items))
	for _, item := range basket.Items {
		dto := ItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			dto.Name = item.Product.Name
			dto.PriceCents = item.Product.PriceCents
			dto.PictureURL = item.Product.PictureURL
			dto.Brand = item.Product.Brand
			dto.Type = item.Product.Type
		}
		items = append(items, dto)
	}
	return &BasketDTO{
		ID:              basket.ID,
		BuyerKey:        basket.BuyerKey,
		Items:           items,
		SubtotalCents:   basket.SubtotalCents(),
		PaymentIntentID: basket.PaymentIntentID,
		ClientSecret:    basket.ClientSecret,
	}
}
