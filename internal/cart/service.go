package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/securewatch/backend/pkg/db"
	pkgerrors "github.com/securewatch/backend/pkg/errors"
)

// Service exposes the session cart operations.
type Service interface {
	// Add accumulates quantity onto the session's line for the product,
	// creating the line when absent. Quantity defaults to 1.
	Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (ItemDTO, error)
	// UpdateQuantity replaces the line's quantity. Zero or below removes the
	// line; the returned removed flag tells the two outcomes apart.
	UpdateQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) (ItemDTO, bool, error)
	// Remove deletes the line and reports whether a row existed.
	Remove(ctx context.Context, sessionID string, itemID uuid.UUID) (bool, error)
	// Clear drops the whole session cart.
	Clear(ctx context.Context, sessionID string) error
	// List returns the joined cart with its derived total.
	List(ctx context.Context, sessionID string) (CartDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (ItemDTO, error) {
	if err := requireSession(sessionID); err != nil {
		return ItemDTO{}, err
	}
	if productID == uuid.Nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	item, err := s.repo.Upsert(ctx, sessionID, productID, quantity)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}

	return ItemDTO{
		ID:        item.ID,
		SessionID: item.SessionID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) (ItemDTO, bool, error) {
	if err := requireSession(sessionID); err != nil {
		return ItemDTO{}, false, err
	}
	if itemID == uuid.Nil {
		return ItemDTO{}, false, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	if quantity <= 0 {
		removed, err := s.Remove(ctx, sessionID, itemID)
		if err != nil {
			return ItemDTO{}, false, err
		}
		if !removed {
			return ItemDTO{}, false, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return ItemDTO{}, true, nil
	}

	item, err := s.repo.SetQuantity(ctx, sessionID, itemID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ItemDTO{}, false, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return ItemDTO{}, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}

	return ItemDTO{
		ID:        item.ID,
		SessionID: item.SessionID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}, false, nil
}

func (s *service) Remove(ctx context.Context, sessionID string, itemID uuid.UUID) (bool, error) {
	if err := requireSession(sessionID); err != nil {
		return false, err
	}
	if itemID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	removed, err := s.repo.Delete(ctx, sessionID, itemID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return removed, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) List(ctx context.Context, sessionID string) (CartDTO, error) {
	if err := requireSession(sessionID); err != nil {
		return CartDTO{}, err
	}

	records, err := s.repo.List(ctx, sessionID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}

	items := make([]LineDTO, 0, len(records))
	total := decimal.Zero
	for _, record := range records {
		lineTotal := record.ProductPrice.Mul(decimal.NewFromInt(int64(record.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, LineDTO{
			ID:        record.ID,
			ProductID: record.ProductID,
			Quantity:  record.Quantity,
			LineTotal: lineTotal,
			Product: LineProduct{
				ID:       record.ProductID,
				Name:     record.ProductName,
				Price:    record.ProductPrice,
				Category: record.ProductCategory,
				Brand:    record.ProductBrand,
				ImageURL: record.ProductImageURL,
				InStock:  record.ProductInStock,
			},
			CreatedAt: record.CreatedAt,
		})
	}

	return CartDTO{Items: items, Total: total}, nil
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
