package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loopstackhq/loopstack-backend/internal/users"
	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
	"github.com/loopstackhq/loopstack-backend/pkg/enums"
	pkgerrors "github.com/loopstackhq/loopstack-backend/pkg/errors"
	"github.com/loopstackhq/loopstack-backend/pkg/logger"
	"github.com/loopstackhq/loopstack-backend/pkg/pagination"
)

type repository interface {
	List(ctx context.Context, input ListInput) ([]models.Product, int64, error)
	DistinctCategories(ctx context.Context, storeID uuid.UUID) ([]string, error)
	FindDetail(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error)
	Related(ctx context.Context, storeID uuid.UUID, category enums.ProductCategory, excludeID uuid.UUID) ([]models.Product, error)
	MoreFromStore(ctx context.Context, storeID, excludeID uuid.UUID) ([]models.Product, error)
	IncrementViews(ctx context.Context, productID uuid.UUID) error
	FindForCart(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type usersRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type storesRepository interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error)
}

// ListQuery is the raw query surface of the list endpoint.
type ListQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// Service exposes the public product catalog for a store.
type Service interface {
	List(ctx context.Context, username string, query ListQuery) (*ListPageDTO, error)
	Detail(ctx context.Context, username, productID string, incrementViews bool) (*DetailPageDTO, error)
	ResolveForCart(ctx context.Context, productIDs []string) ([]CartProductDTO, error)
}

type service struct {
	repo   repository
	users  usersRepository
	stores storesRepository
	logg   *logger.Logger
}

// NewService builds a catalog service with the provided repositories.
func NewService(repo repository, usersRepo usersRepository, storesRepo storesRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if storesRepo == nil {
		return nil, fmt.Errorf("stores repository required")
	}
	return &service{repo: repo, users: usersRepo, stores: storesRepo, logg: logg}, nil
}

func (s *service) resolveStore(ctx context.Context, username string) (*models.User, *models.Store, error) {
	if !users.ValidUsername(username) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid username format")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	store, err := s.stores.FindByOwner(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found for this user")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return user, store, nil
}

func (s *service) List(ctx context.Context, username string, query ListQuery) (*ListPageDTO, error) {
	user, store, err := s.resolveStore(ctx, username)
	if err != nil {
		return nil, err
	}

	filters := ListFilters{Search: strings.TrimSpace(query.Search)}
	category := strings.TrimSpace(query.Category)
	if category != "" && category != "all" {
		parsed, err := enums.ParseProductCategory(category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		filters.Category = &parsed
	}

	params := pagination.Normalize(pagination.Params{Page: query.Page, Limit: query.Limit})
	rows, total, err := s.repo.List(ctx, ListInput{
		StoreID:    store.ID,
		Filters:    filters,
		Pagination: params,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	categories, err := s.repo.DistinctCategories(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, productFromModel(row))
	}

	return &ListPageDTO{
		Products: dtos,
		Store: StoreSummaryDTO{
			ID:          store.ID,
			DisplayName: store.DisplayName,
			Description: store.Description,
		},
		Username:   user.Username,
		Pagination: pagination.BuildMeta(params, total),
		Filters: FiltersDTO{
			Categories: categories,
			AppliedFilters: AppliedFiltersDTO{
				Category: category,
				Search:   filters.Search,
			},
		},
	}, nil
}

func (s *service) Detail(ctx context.Context, username, productID string, incrementViews bool) (*DetailPageDTO, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product ID format")
	}

	user, store, err := s.resolveStore(ctx, username)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindDetail(ctx, store.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	related, err := s.repo.Related(ctx, store.ID, product.Category, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load related products")
	}
	more, err := s.repo.MoreFromStore(ctx, store.ID, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load more products")
	}

	if incrementViews {
		if err := s.repo.IncrementViews(ctx, product.ID); err != nil {
			// view counter is best effort, the detail page still renders
			if s.logg != nil {
				warnCtx := s.logg.WithFields(ctx, map[string]any{
					"error":      err.Error(),
					"product_id": product.ID.String(),
				})
				s.logg.Warn(warnCtx, "incrementing product views failed")
			}
		} else {
			product.TotalViews++
		}
	}

	detail := DetailProductDTO{
		ProductDTO:         productFromModel(*product),
		DiscountPercentage: product.DiscountPercent(),
	}

	relatedDTOs := make([]TeaserDTO, 0, len(related))
	for _, row := range related {
		relatedDTOs = append(relatedDTOs, teaserFromModel(row, false))
	}
	moreDTOs := make([]TeaserDTO, 0, len(more))
	for _, row := range more {
		moreDTOs = append(moreDTOs, teaserFromModel(row, true))
	}

	contact := store.Contact.WhatsAppSupport
	summary := StoreSummaryDTO{
		ID:          store.ID,
		DisplayName: store.DisplayName,
		Description: store.Description,
	}
	if contact != "" {
		summary.ContactNumber = &contact
	}

	return &DetailPageDTO{
		Product:       detail,
		Store:         summary,
		Username:      user.Username,
		Related:       relatedDTOs,
		MoreFromStore: moreDTOs,
		Metadata: DetailMetadataDTO{
			ViewsIncremented:   incrementViews,
			RelatedCount:       len(relatedDTOs),
			MoreFromStoreCount: len(moreDTOs),
		},
	}, nil
}

func (s *service) ResolveForCart(ctx context.Context, productIDs []string) ([]CartProductDTO, error) {
	if len(productIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product IDs array is required")
	}

	valid := make([]uuid.UUID, 0, len(productIDs))
	for _, raw := range productIDs {
		if id, err := uuid.Parse(raw); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no valid product IDs provided")
	}

	rows, err := s.repo.FindForCart(ctx, valid)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
	}

	dtos := make([]CartProductDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, cartProductFromModel(row))
	}
	return dtos, nil
}
