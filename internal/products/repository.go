package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
	"github.com/loopstackhq/loopstack-backend/pkg/enums"
	"github.com/loopstackhq/loopstack-backend/pkg/pagination"
)

const (
	relatedLimit       = 4
	moreFromStoreLimit = 6
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) listQuery(ctx context.Context, input ListInput) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("store_id = ? AND soft_delete = ?", input.StoreID, false)

	if input.Filters.Category != nil {
		q = q.Where("category = ?", input.Filters.Category.String())
	}
	if search := input.Filters.Search; search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			"name ILIKE ? OR description ILIKE ? OR EXISTS (SELECT 1 FROM unnest(key_features) AS kf WHERE kf ILIKE ?)",
			pattern, pattern, pattern,
		)
	}
	return q
}

// List returns one catalog page plus the unpaginated match count.
func (r *Repository) List(ctx context.Context, input ListInput) ([]models.Product, int64, error) {
	var total int64
	if err := r.listQuery(ctx, input).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := pagination.Normalize(input.Pagination)
	var rows []models.Product
	if err := r.listQuery(ctx, input).
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// DistinctCategories lists the categories the store actually sells.
func (r *Repository) DistinctCategories(ctx context.Context, storeID uuid.UUID) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Where("store_id = ? AND soft_delete = ?", storeID, false).
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindDetail loads a visible product scoped to the store.
func (r *Repository) FindDetail(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ? AND soft_delete = ?", productID, storeID, false).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Related returns the most viewed in-stock products sharing the category.
func (r *Repository) Related(ctx context.Context, storeID uuid.UUID, category enums.ProductCategory, excludeID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND category = ? AND id <> ? AND soft_delete = ? AND in_stock = ?",
			storeID, category.String(), excludeID, false, true).
		Order("total_views DESC").
		Limit(relatedLimit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// MoreFromStore returns the newest in-stock products from the same store.
func (r *Repository) MoreFromStore(ctx context.Context, storeID, excludeID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id <> ? AND soft_delete = ? AND in_stock = ?",
			storeID, excludeID, false, true).
		Order("created_at DESC").
		Limit(moreFromStoreLimit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// IncrementViews bumps the view counter without loading the row.
func (r *Repository) IncrementViews(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("total_views", gorm.Expr("total_views + 1")).Error
}

// FindForCart loads visible, in-stock products by id with their owning store.
// Unknown ids simply produce fewer rows.
func (r *Repository) FindForCart(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Store").
		Where("id IN ? AND soft_delete = ? AND in_stock = ?", ids, false, true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
