package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration validation failed: %v", err)
	}
}

func TestBasketsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_baskets.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS baskets",
		"CREATE TABLE IF NOT EXISTS basket_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_baskets_buyer_key",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_basket_product",
		"FOREIGN KEY (basket_id) REFERENCES baskets(id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"DROP TABLE IF EXISTS basket_items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsSnapshotColumns(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"ship_full_name TEXT NOT NULL",
		"price_cents BIGINT NOT NULL CHECK (price_cents >= 0)",
		"CREATE INDEX IF NOT EXISTS idx_orders_payment_intent_id",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS order_items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestProductsMigrationGuardsStock(t *testing.T) {
	content := readMigration(t, "*_create_products.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"quantity_in_stock INT NOT NULL DEFAULT 0 CHECK (quantity_in_stock >= 0)",
		"CREATE INDEX IF NOT EXISTS idx_products_brand",
		"CREATE INDEX IF NOT EXISTS idx_products_type",
		"DROP TABLE IF EXISTS products",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
