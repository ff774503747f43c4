package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  picture_url TEXT NOT NULL,
  type TEXT NOT NULL,
  brand TEXT NOT NULL,
  quantity_in_stock INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec("DELETE FROM products").Error)
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name, brand, ptype string, priceCents, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:              uuid.New(),
		Name:            name,
		Description:     "test product",
		PriceCents:      priceCents,
		PictureURL:      "/images/test.png",
		Type:            ptype,
		Brand:           brand,
		QuantityInStock: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositorySearch_termAndSort(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	createProduct(t, db, "Angular Speedster Board", "Angular", "Boards", 15000, 100)
	createProduct(t, db, "Angular Blue Hat", "Angular", "Hats", 1000, 100)
	createProduct(t, db, "Core Board", "NetCore", "Boards", 25000, 100)

	list, err := repo.Search(context.Background(), SearchParams{SearchTerm: "angular"})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Meta.TotalCount)
	// default ordering is by name
	assert.Equal(t, "Angular Blue Hat", list.Items[0].Name)

	byPrice, err := repo.Search(context.Background(), SearchParams{OrderBy: OrderByPrice})
	require.NoError(t, err)
	require.Len(t, byPrice.Items, 3)
	assert.Equal(t, 1000, byPrice.Items[0].PriceCents)

	byPriceDesc, err := repo.Search(context.Background(), SearchParams{OrderBy: OrderByPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, 25000, byPriceDesc.Items[0].PriceCents)
}

func TestRepositorySearch_filtersAndPagination(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	createProduct(t, db, "Board One", "Angular", "Boards", 10000, 100)
	createProduct(t, db, "Board Two", "NetCore", "Boards", 12000, 100)
	createProduct(t, db, "Hat One", "React", "Hats", 900, 100)

	filtered, err := repo.Search(context.Background(), SearchParams{
		Brands: []string{"Angular", "NetCore"},
		Types:  []string{"Boards"},
	})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 2)

	page, err := repo.Search(context.Background(), SearchParams{
		Page: pagination.Params{PageNumber: 2, PageSize: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 2, page.Meta.TotalPages)
	assert.Equal(t, 3, page.Meta.TotalCount)
}

func TestRepositoryFilterOptions(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	createProduct(t, db, "A", "Zebra", "Hats", 100, 1)
	createProduct(t, db, "B", "Acme", "Boards", 100, 1)
	createProduct(t, db, "C", "Acme", "Hats", 100, 1)

	opts, err := repo.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Zebra"}, opts.Brands)
	assert.Equal(t, []string{"Boards", "Hats"}, opts.Types)
}

func TestRepositoryDecrementStock(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	product := createProduct(t, db, "Limited", "Acme", "Boards", 5000, 3)

	ok, err := repo.DecrementStock(context.Background(), product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(context.Background(), product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok, "decrement past held stock must not apply")

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 1, reloaded.QuantityInStock)
}

func TestRepositoryFindByID_missing(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
