package repository

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	DB *gorm.DB
}

func NewDefaultUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{DB: db}
}

func (r *DefaultUserRepository) ExistsByID(ctx context.Context, userID int64) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	return count > 0, nil
}
