package repository

import (
	"context"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	*Collection[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		Collection: NewCollection[models.Project](db),
		db:         db,
	}
}

// ListFeatured returns up to limit featured projects, newest first
func (r *ProjectRepository) ListFeatured(ctx context.Context, limit int) ([]models.Project, error) {
	projects := make([]models.Project, 0, limit)
	err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}
