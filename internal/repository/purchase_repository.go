package repository

import (
	"context"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository struct {
	*Collection[models.CoffeePurchase]
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{
		Collection: NewCollection[models.CoffeePurchase](db),
		db:         db,
	}
}

// ListByUser returns the purchases made by one user, newest first
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CoffeePurchase, error) {
	purchases := make([]models.CoffeePurchase, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

// Decide moves a pending purchase to a terminal status. The update is
// conditional on status = pending, so it reports false when the purchase
// does not exist or was already decided.
func (r *PurchaseRepository) Decide(ctx context.Context, id uuid.UUID, status models.PurchaseStatus, fields map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": status}
	for k, v := range fields {
		updates[k] = v
	}

	result := r.db.WithContext(ctx).
		Model(&models.CoffeePurchase{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
