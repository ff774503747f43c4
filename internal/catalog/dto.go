package catalog

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Sort orders supported by the product list.
const (
	OrderByName      = "name"
	OrderByPrice     = "price"
	OrderByPriceDesc = "priceDesc"
)

// SearchParams describe the inputs supported by the product list.
type SearchParams struct {
	SearchTerm string
	Brands     []string
	Types      []string
	OrderBy    string
	Page       pagination.Params
}

// ProductList wraps a page of products plus its metadata.
type ProductList struct {
	Items []models.Product    `json:"items"`
	Meta  pagination.MetaData `json:"metaData"`
}

// FilterOptions lists the distinct brands and types buyers can filter on.
type FilterOptions struct {
	Brands []string `json:"brands"`
	Types  []string `json:"types"`
}

// ProductDTO is the catalog product shape returned to clients.
type ProductDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PriceCents      int       `json:"price"`
	PictureURL      string    `json:"pictureUrl"`
	Type            string    `json:"type"`
	Brand           string    `json:"brand"`
	QuantityInStock int       `json:"quantityInStock"`
}

// NewProductDTO maps the persisted product to its API shape.
func NewProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	return &ProductDTO{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		PriceCents:      product.PriceCents,
		PictureURL:      product.PictureURL,
		Type:            product.Type,
		Brand:           product.Brand,
		QuantityInStock: product.QuantityInStock,
	}
}

// NewProductDTOs maps a slice of products.
func NewProductDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *NewProductDTO(&products[i]))
	}
	return out
}

// ProductPage is the paginated response served by the list endpoint.
type ProductPage struct {
	Items []ProductDTO        `json:"items"`
	Meta  pagination.MetaData `json:"metaData"`
}
