package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// PlaceOrderInput carries the checkout payload for an authenticated buyer.
type PlaceOrderInput struct {
	ShippingAddress types.Address `json:"shippingAddress" validate:"required"`
	SaveAddress     bool          `json:"saveAddress"`
}

// OrderItemDTO is the product snapshot carried by an order line.
type OrderItemDTO struct {
	ProductID  uuid.UUID `json:"productId"`
	Name       string    `json:"name"`
	PictureURL string    `json:"pictureUrl"`
	PriceCents int       `json:"price"`
	Quantity   int       `json:"quantity"`
}

// OrderDTO is the order shape returned to clients.
type OrderDTO struct {
	ID               uuid.UUID         `json:"id"`
	BuyerKey         string            `json:"buyerId"`
	Status           enums.OrderStatus `json:"status"`
	ShippingAddress  types.Address     `json:"shippingAddress"`
	Items            []OrderItemDTO    `json:"items"`
	SubtotalCents    int               `json:"subtotal"`
	DeliveryFeeCents int               `json:"deliveryFee"`
	TotalCents       int               `json:"total"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// NewOrderDTO maps the persisted order, items preloaded.
func NewOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID:  item.ProductID,
			Name:       item.Name,
			PictureURL: item.PictureURL,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		})
	}
	return &OrderDTO{
		ID:               order.ID,
		BuyerKey:         order.BuyerKey,
		Status:           order.Status,
		ShippingAddress:  order.ShippingAddress,
		Items:            items,
		SubtotalCents:    order.SubtotalCents,
		DeliveryFeeCents: order.DeliveryFeeCents,
		TotalCents:       order.TotalCents(),
		CreatedAt:        order.CreatedAt,
	}
}

// NewOrderDTOs maps a slice of orders.
func NewOrderDTOs(orders []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *NewOrderDTO(&orders[i]))
	}
	return out
}
