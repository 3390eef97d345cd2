package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/securewatch/backend/pkg/db/models"
)

// Repository encapsulates cart persistence.
type Repository interface {
	Upsert(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (models.CartItem, error)
	SetQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) (models.CartItem, error)
	Delete(ctx context.Context, sessionID string, itemID uuid.UUID) (bool, error)
	Clear(ctx context.Context, sessionID string) error
	List(ctx context.Context, sessionID string) ([]LineRecord, error)
}

// LineRecord is the join row the list query scans into.
type LineRecord struct {
	ID              uuid.UUID       `gorm:"column:id"`
	ProductID       uuid.UUID       `gorm:"column:product_id"`
	Quantity        int             `gorm:"column:quantity"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	ProductName     string          `gorm:"column:product_name"`
	ProductPrice    decimal.Decimal `gorm:"column:product_price"`
	ProductCategory string          `gorm:"column:product_category"`
	ProductBrand    string          `gorm:"column:product_brand"`
	ProductImageURL string          `gorm:"column:product_image_url"`
	ProductInStock  bool            `gorm:"column:product_in_stock"`
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Upsert inserts the line or accumulates quantity onto the existing one in a
// single statement, so concurrent adds for the same session/product pair
// cannot lose updates. Relies on the cart_items_session_product_key unique
// constraint.
func (r *gormRepository) Upsert(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Raw(`
INSERT INTO cart_items (id, session_id, product_id, quantity)
VALUES (?, ?, ?, ?)
ON CONFLICT (session_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = CURRENT_TIMESTAMP
RETURNING id, session_id, product_id, quantity, created_at, updated_at`,
		uuid.New(), sessionID, productID, quantity,
	).Scan(&item).Error
	if err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// SetQuantity replaces the quantity on an existing line owned by the session.
func (r *gormRepository) SetQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) (models.CartItem, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		Update("quantity", quantity)
	if res.Error != nil {
		return models.CartItem{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.CartItem{}, gorm.ErrRecordNotFound
	}

	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		First(&item).Error; err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// Delete removes the line if present and reports whether a row went away.
func (r *gormRepository) Delete(ctx context.Context, sessionID string, itemID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Clear drops every line for the session.
func (r *gormRepository) Clear(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartItem{}).
		Error
}

// List returns the session's lines joined with their products in insertion
// order.
func (r *gormRepository) List(ctx context.Context, sessionID string) ([]LineRecord, error) {
	var records []LineRecord
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select([]string{
			"ci.id",
			"ci.product_id",
			"ci.quantity",
			"ci.created_at",
			"p.name AS product_name",
			"p.price AS product_price",
			"p.category AS product_category",
			"p.brand AS product_brand",
			"p.image_url AS product_image_url",
			"p.in_stock AS product_in_stock",
		}).
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.session_id = ?", sessionID).
		Order("ci.created_at ASC").
		Order("ci.id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
