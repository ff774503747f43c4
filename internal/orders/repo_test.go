package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  buyer_key TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  ship_full_name TEXT,
  ship_address1 TEXT,
  ship_address2 TEXT,
  ship_city TEXT,
  ship_state TEXT,
  ship_zip TEXT,
  ship_country TEXT,
  subtotal_cents INTEGER NOT NULL,
  delivery_fee_cents INTEGER NOT NULL,
  payment_intent_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  picture_url TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	require.NoError(t, db.Exec("DELETE FROM order_items").Error)
	require.NoError(t, db.Exec("DELETE FROM orders").Error)
	return db
}

func newOrder(t *testing.T, repo Repository, buyerKey string, items ...models.OrderItem) *models.Order {
	t.Helper()

	subtotal := 0
	for _, item := range items {
		subtotal += item.PriceCents * item.Quantity
	}
	order, err := repo.Create(context.Background(), &models.Order{
		ID:       uuid.New(),
		BuyerKey: buyerKey,
		Status:   enums.OrderStatusPending,
		ShippingAddress: types.Address{
			FullName: "Test Buyer",
			Address1: "1 Main St",
			City:     "Springfield",
			State:    "IL",
			Zip:      "62701",
			Country:  "USA",
		},
		SubtotalCents:    subtotal,
		DeliveryFeeCents: 500,
		Items:            items,
	})
	require.NoError(t, err)
	return order
}

func TestRepositoryCreate_persistsItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	productID := uuid.New()
	order := newOrder(t, repo, "buyer-1", models.OrderItem{
		ID:         uuid.New(),
		ProductID:  productID,
		Name:       "Board",
		PictureURL: "/images/board.png",
		PriceCents: 15000,
		Quantity:   2,
	})

	loaded, err := repo.FindForBuyer(context.Background(), order.ID, "buyer-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, productID, loaded.Items[0].ProductID)
	assert.Equal(t, "Board", loaded.Items[0].Name)
	assert.Equal(t, 30000, loaded.SubtotalCents)
	assert.Equal(t, 30500, loaded.TotalCents())
	assert.Equal(t, enums.OrderStatusPending, loaded.Status)
}

func TestRepositoryFindForBuyer_scopesToBuyer(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := newOrder(t, repo, "buyer-1", models.OrderItem{
		ID:         uuid.New(),
		ProductID:  uuid.New(),
		Name:       "Hat",
		PictureURL: "/images/hat.png",
		PriceCents: 2000,
		Quantity:   1,
	})

	_, err := repo.FindForBuyer(context.Background(), order.ID, "someone-else")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByBuyerKey_newestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	first := newOrder(t, repo, "buyer-1", models.OrderItem{
		ID: uuid.New(), ProductID: uuid.New(), Name: "Hat",
		PictureURL: "/images/hat.png", PriceCents: 2000, Quantity: 1,
	})
	require.NoError(t, db.Exec(
		"UPDATE orders SET created_at = datetime('now', '-1 hour') WHERE id = ?",
		first.ID,
	).Error)
	second := newOrder(t, repo, "buyer-1", models.OrderItem{
		ID: uuid.New(), ProductID: uuid.New(), Name: "Board",
		PictureURL: "/images/board.png", PriceCents: 15000, Quantity: 1,
	})
	newOrder(t, repo, "buyer-2", models.OrderItem{
		ID: uuid.New(), ProductID: uuid.New(), Name: "Gloves",
		PictureURL: "/images/gloves.png", PriceCents: 3000, Quantity: 1,
	})

	orders, err := repo.ListByBuyerKey(context.Background(), "buyer-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	require.Len(t, orders[0].Items, 1)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	intentID := "pi_test_123"
	order, err := repo.Create(context.Background(), &models.Order{
		ID:               uuid.New(),
		BuyerKey:         "buyer-1",
		Status:           enums.OrderStatusPending,
		SubtotalCents:    2000,
		DeliveryFeeCents: 500,
		PaymentIntentID:  &intentID,
	})
	require.NoError(t, err)

	found, err := repo.FindByPaymentIntentID(context.Background(), intentID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusPaymentReceived))

	loaded, err := repo.FindForBuyer(context.Background(), order.ID, "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaymentReceived, loaded.Status)
}
