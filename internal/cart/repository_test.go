package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ddl := []string{
		`CREATE TABLE products (
			id TEXT PRIMARY KEY,
			sku TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL,
			category TEXT NOT NULL,
			brand TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			features TEXT NOT NULL DEFAULT '{}',
			additional_images TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE cart_items (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			product_id TEXT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT cart_items_session_product_key UNIQUE (session_id, product_id)
		)`,
	}
	for _, stmt := range ddl {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("apply ddl: %v", err)
		}
	}
	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, price string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := conn.Exec(
		"INSERT INTO products (id, sku, name, price, category) VALUES (?, ?, ?, ?, ?)",
		id, "SW-"+id.String()[:8], "Dome Camera", price, "cameras",
	).Error
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return id
}

func TestRepositoryUpsertAccumulates(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	productID := seedProduct(t, conn, "199.99")

	first, err := repo.Upsert(context.Background(), "sess-1", productID, 2)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", first.Quantity)
	}

	second, err := repo.Upsert(context.Background(), "sess-1", productID, 3)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.Quantity != 5 {
		t.Fatalf("expected accumulated quantity 5, got %d", second.Quantity)
	}
	if second.ID != first.ID {
		t.Fatal("expected the existing row to absorb the second add")
	}

	var count int64
	if err := conn.Table("cart_items").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row, got %d", count)
	}
}

func TestRepositoryUpsertConcurrentAddsAccumulate(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	productID := seedProduct(t, conn, "199.99")

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Upsert(context.Background(), "sess-1", productID, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent upsert: %v", err)
	}

	records, err := repo.List(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected a single row after concurrent adds, got %d", len(records))
	}
	if records[0].Quantity != 2 {
		t.Fatalf("expected both adds to land, got quantity %d", records[0].Quantity)
	}
}

func TestRepositoryUpsertUnknownProduct(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)

	_, err := repo.Upsert(context.Background(), "sess-1", uuid.New(), 1)
	if err == nil {
		t.Fatal("expected foreign key failure")
	}
}

func TestRepositorySetQuantity(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	productID := seedProduct(t, conn, "50.00")

	line, err := repo.Upsert(context.Background(), "sess-1", productID, 2)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	updated, err := repo.SetQuantity(context.Background(), "sess-1", line.ID, 9)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if updated.Quantity != 9 {
		t.Fatalf("expected replaced quantity 9, got %d", updated.Quantity)
	}

	if _, err := repo.SetQuantity(context.Background(), "other-sess", line.ID, 1); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record not found for foreign session, got %v", err)
	}
}

func TestRepositoryDeleteAndClear(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	p1 := seedProduct(t, conn, "10.00")
	p2 := seedProduct(t, conn, "20.00")

	l1, err := repo.Upsert(context.Background(), "sess-1", p1, 1)
	if err != nil {
		t.Fatalf("upsert p1: %v", err)
	}
	if _, err := repo.Upsert(context.Background(), "sess-1", p2, 2); err != nil {
		t.Fatalf("upsert p2: %v", err)
	}

	removed, err := repo.Delete(context.Background(), "sess-1", l1.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("expected row removal")
	}

	removed, err = repo.Delete(context.Background(), "sess-1", l1.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if removed {
		t.Fatal("expected no-op for missing row")
	}

	if err := repo.Clear(context.Background(), "sess-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, err := repo.List(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty cart, got %d rows", len(records))
	}
}

func TestRepositoryListJoinsProducts(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	p1 := seedProduct(t, conn, "199.99")
	p2 := seedProduct(t, conn, "49.50")

	if _, err := repo.Upsert(context.Background(), "sess-1", p1, 1); err != nil {
		t.Fatalf("upsert p1: %v", err)
	}
	if _, err := repo.Upsert(context.Background(), "sess-1", p2, 3); err != nil {
		t.Fatalf("upsert p2: %v", err)
	}
	if _, err := repo.Upsert(context.Background(), "sess-2", p1, 5); err != nil {
		t.Fatalf("upsert other session: %v", err)
	}

	records, err := repo.List(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(records))
	}
	if records[0].ProductID != p1 {
		t.Fatal("expected insertion order")
	}
	if !records[0].ProductPrice.Equal(decimal.RequireFromString("199.99")) {
		t.Fatalf("unexpected joined price %s", records[0].ProductPrice)
	}
	if records[0].ProductName != "Dome Camera" {
		t.Fatalf("unexpected joined name %q", records[0].ProductName)
	}
}
