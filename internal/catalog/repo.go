package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Search(ctx context.Context, params SearchParams) (*ProductList, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Search(ctx context.Context, params SearchParams) (*ProductList, error) {
	page := params.Page.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if term := strings.TrimSpace(params.SearchTerm); term != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if len(params.Brands) > 0 {
		query = query.Where("brand IN ?", params.Brands)
	}
	if len(params.Types) > 0 {
		query = query.Where("type IN ?", params.Types)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	switch params.OrderBy {
	case OrderByPrice:
		query = query.Order("price_cents ASC")
	case OrderByPriceDesc:
		query = query.Order("price_cents DESC")
	default:
		query = query.Order("name ASC")
	}

	var products []models.Product
	if err := query.Offset(page.Offset()).Limit(page.PageSize).Find(&products).Error; err != nil {
		return nil, err
	}

	return &ProductList{
		Items: products,
		Meta:  pagination.NewMetaData(page, int(total)),
	}, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	var brands []string
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("brand").
		Order("brand ASC").
		Pluck("brand", &brands).Error; err != nil {
		return nil, err
	}

	var types []string
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("type").
		Order("type ASC").
		Pluck("type", &types).Error; err != nil {
		return nil, err
	}

	return &FilterOptions{Brands: brands, Types: types}, nil
}

// DecrementStock reduces stock only when enough is held, reporting whether the
// decrement happened. The conditional update keeps concurrent placements from
// driving stock negative.
func (r *repository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND quantity_in_stock >= ?", productID, qty).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
