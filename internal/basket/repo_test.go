package basket

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

func setupBasketTestDB(t *testing.T) *gorm.DB {
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
	baskets := `
CREATE TABLE IF NOT EXISTS baskets (
  id TEXT PRIMARY KEY,
  buyer_key TEXT NOT NULL UNIQUE,
  payment_intent_id TEXT,
  client_secret TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	basketItems := `
CREATE TABLE IF NOT EXISTS basket_items (
  id TEXT PRIMARY KEY,
  basket_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(baskets).Error)
	require.NoError(t, db.Exec(basketItems).Error)
	require.NoError(t, db.Exec("DELETE FROM basket_items").Error)
	require.NoError(t, db.Exec("DELETE FROM baskets").Error)
	require.NoError(t, db.Exec("DELETE FROM products").Error)
	return db
}

func newProduct(t *testing.T, db *gorm.DB, name string, priceCents int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:              uuid.New(),
		Name:            name,
		Description:     "test",
		PriceCents:      priceCents,
		PictureURL:      "/images/test.png",
		Type:            "Boards",
		Brand:           "Acme",
		QuantityInStock: 100,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newBasket(t *testing.T, db *gorm.DB, buyerKey string) *models.Basket {
	t.Helper()

	basket := &models.Basket{ID: uuid.New(), BuyerKey: buyerKey}
	require.NoError(t, db.Create(basket).Error)
	return basket
}

func TestRepositoryFindByBuyerKey_preloadsProducts(t *testing.T) {
	db := setupBasketTestDB(t)
	repo := NewRepository(db)

	product := newProduct(t, db, "Board", 15000)
	held := newBasket(t, db, "buyer-1")
	require.NoError(t, repo.CreateItem(context.Background(), &models.BasketItem{
		ID:        uuid.New(),
		BasketID:  held.ID,
		ProductID: product.ID,
		Quantity:  2,
	}))

	loaded, err := repo.FindByBuyerKey(context.Background(), "buyer-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, "Board", loaded.Items[0].Product.Name)
	assert.Equal(t, 30000, loaded.SubtotalCents())
}

func TestRepositoryDelete_removesLines(t *testing.T) {
	db := setupBasketTestDB(t)
	repo := NewRepository(db)

	product := newProduct(t, db, "Hat", 900)
	held := newBasket(t, db, "buyer-2")
	require.NoError(t, repo.CreateItem(context.Background(), &models.BasketItem{
		ID:        uuid.New(),
		BasketID:  held.ID,
		ProductID: product.ID,
		Quantity:  1,
	}))

	require.NoError(t, repo.Delete(context.Background(), held.ID))

	_, err := repo.FindByBuyerKey(context.Background(), "buyer-2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&models.BasketItem{}).Where("basket_id = ?", held.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRepositoryDeleteByBuyerKey_missingIsNoop(t *testing.T) {
	db := setupBasketTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.DeleteByBuyerKey(context.Background(), "nobody"))
}

func TestRepositorySetPaymentIntent(t *testing.T) {
	db := setupBasketTestDB(t)
	repo := NewRepository(db)

	held := newBasket(t, db, "buyer-3")
	require.NoError(t, repo.SetPaymentIntent(context.Background(), held.ID, "pi_123", "pi_123_secret"))

	loaded, err := repo.FindByBuyerKey(context.Background(), "buyer-3")
	require.NoError(t, err)
	require.NotNil(t, loaded.PaymentIntentID)
	assert.Equal(t, "pi_123", *loaded.PaymentIntentID)
	require.NotNil(t, loaded.ClientSecret)
	assert.Equal(t, "pi_123_secret", *loaded.ClientSecret)
}
