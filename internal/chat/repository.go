package chat

import (
	"context"

	"gorm.io/gorm"

	"github.com/securewatch/backend/pkg/db/models"
)

// Repository stores the append-only assistant exchange log.
type Repository interface {
	Append(ctx context.Context, message *models.ChatMessage) error
	History(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a chat repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Append(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *gormRepository) History(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
