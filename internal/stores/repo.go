package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
)

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByOwner loads the store owned by the provided user. Each owner has at
// most one store.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindSocialLinks loads the link-in-bio row for a store.
func (r *Repository) FindSocialLinks(ctx context.Context, storeID uuid.UUID) (*models.SocialLinks, error) {
	var links models.SocialLinks
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		First(&links).Error; err != nil {
		return nil, err
	}
	return &links, nil
}
