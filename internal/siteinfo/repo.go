package siteinfo

import (
	"context"

	"gorm.io/gorm"

	"github.com/nvteo/bakeshop-backend/pkg/db/models"
)

// Repository encapsulates the singleton website-info row.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a site-info repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get loads the singleton row, oldest id wins if several exist.
func (r *Repository) Get(ctx context.Context) (*models.WebsiteInfo, error) {
	var row models.WebsiteInfo
	if err := r.db.WithContext(ctx).Order("id ASC").First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Save inserts the row on first write and updates it afterwards.
func (r *Repository) Save(ctx context.Context, info *models.WebsiteInfo) error {
	return r.db.WithContext(ctx).Save(info).Error
}
