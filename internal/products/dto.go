package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
	"github.com/loopstackhq/loopstack-backend/pkg/enums"
	"github.com/loopstackhq/loopstack-backend/pkg/pagination"
)

// placeholderImage stands in for products without uploaded media.
const placeholderImage = "/api/placeholder/150/150"

// ProductDTO is a full catalog row as exposed by the list endpoint.
type ProductDTO struct {
	ID                uuid.UUID             `json:"id"`
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	Category          enums.ProductCategory `json:"category"`
	Images            []string              `json:"images"`
	ActualPrice       decimal.Decimal       `json:"actualPrice"`
	OfferPrice        *decimal.Decimal      `json:"offerPrice,omitempty"`
	TotalQuantity     int                   `json:"totalQuantity"`
	AvailableLocation string                `json:"availableLocation"`
	InStock           bool                  `json:"inStock"`
	KeyFeatures       []string              `json:"keyFeatures"`
	TotalViews        int                   `json:"totalViews"`
	TotalBuys         int                   `json:"totalBuys"`
	CreatedAt         time.Time             `json:"createdAt"`
}

// StoreSummaryDTO is the catalog header block.
type StoreSummaryDTO struct {
	ID            uuid.UUID `json:"id"`
	DisplayName   string    `json:"displayName"`
	Description   *string   `json:"description,omitempty"`
	ContactNumber *string   `json:"contactNumber,omitempty"`
}

// AppliedFiltersDTO echoes the caller's filter selections.
type AppliedFiltersDTO struct {
	Category string `json:"category,omitempty"`
	Search   string `json:"search,omitempty"`
}

// FiltersDTO groups the available and applied filters.
type FiltersDTO struct {
	Categories     []string          `json:"categories"`
	AppliedFilters AppliedFiltersDTO `json:"appliedFilters"`
}

// ListPageDTO is the full products list payload.
type ListPageDTO struct {
	Products   []ProductDTO    `json:"products"`
	Store      StoreSummaryDTO `json:"store"`
	Username   string          `json:"username"`
	Pagination pagination.Meta `json:"pagination"`
	Filters    FiltersDTO      `json:"filters"`
}

// DetailProductDTO extends the catalog row with the discount badge.
type DetailProductDTO struct {
	ProductDTO
	DiscountPercentage int `json:"discountPercentage"`
}

// TeaserDTO is the compact card used for related/more-from-store strips.
type TeaserDTO struct {
	ID                uuid.UUID              `json:"id"`
	Name              string                 `json:"name"`
	Images            []string               `json:"images"`
	ActualPrice       decimal.Decimal        `json:"actualPrice"`
	OfferPrice        *decimal.Decimal       `json:"offerPrice,omitempty"`
	Category          *enums.ProductCategory `json:"category,omitempty"`
	AvailableLocation string                 `json:"availableLocation"`
}

// DetailMetadataDTO reports side effects of the detail read.
type DetailMetadataDTO struct {
	ViewsIncremented   bool `json:"viewsIncremented"`
	RelatedCount       int  `json:"relatedCount"`
	MoreFromStoreCount int  `json:"moreFromStoreCount"`
}

// DetailPageDTO is the full product detail payload.
type DetailPageDTO struct {
	Product       DetailProductDTO  `json:"product"`
	Store         StoreSummaryDTO   `json:"store"`
	Username      string            `json:"username"`
	Related       []TeaserDTO       `json:"relatedProducts"`
	MoreFromStore []TeaserDTO       `json:"moreFromStore"`
	Metadata      DetailMetadataDTO `json:"metadata"`
}

// CartStoreDTO is the owning-store block on resolved cart rows.
type CartStoreDTO struct {
	ID            uuid.UUID `json:"id"`
	DisplayName   string    `json:"displayName"`
	ContactNumber *string   `json:"contactNumber,omitempty"`
}

// CartProductDTO is one resolved cart row: the minimal product data the cart
// page and the checkout formatter need.
type CartProductDTO struct {
	ID                 uuid.UUID             `json:"id"`
	Name               string                `json:"name"`
	Image              string                `json:"image"`
	ActualPrice        decimal.Decimal       `json:"actualPrice"`
	OfferPrice         decimal.Decimal       `json:"offerPrice"`
	TotalQuantity      int                   `json:"totalQuantity"`
	AvailableLocation  string                `json:"availableLocation"`
	Category           enums.ProductCategory `json:"category"`
	Store              CartStoreDTO          `json:"store"`
	DiscountPercentage int                   `json:"discountPercentage"`
}

func productFromModel(m models.Product) ProductDTO {
	return ProductDTO{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Category:          m.Category,
		Images:            m.Images,
		ActualPrice:       m.ActualPrice,
		OfferPrice:        m.OfferPrice,
		TotalQuantity:     m.TotalQuantity,
		AvailableLocation: m.AvailableLocation,
		InStock:           m.InStock,
		KeyFeatures:       m.KeyFeatures,
		TotalViews:        m.TotalViews,
		TotalBuys:         m.TotalBuys,
		CreatedAt:         m.CreatedAt,
	}
}

func teaserFromModel(m models.Product, withCategory bool) TeaserDTO {
	dto := TeaserDTO{
		ID:                m.ID,
		Name:              m.Name,
		Images:            m.Images,
		ActualPrice:       m.ActualPrice,
		OfferPrice:        m.OfferPrice,
		AvailableLocation: m.AvailableLocation,
	}
	if withCategory {
		category := m.Category
		dto.Category = &category
	}
	return dto
}

func cartProductFromModel(m models.Product) CartProductDTO {
	image := placeholderImage
	if len(m.Images) > 0 && m.Images[0] != "" {
		image = m.Images[0]
	}

	dto := CartProductDTO{
		ID:                 m.ID,
		Name:               m.Name,
		Image:              image,
		ActualPrice:        m.ActualPrice,
		OfferPrice:         m.EffectivePrice(),
		TotalQuantity:      m.TotalQuantity,
		AvailableLocation:  m.AvailableLocation,
		Category:           m.Category,
		DiscountPercentage: m.DiscountPercent(),
	}
	if m.Store != nil {
		dto.Store = CartStoreDTO{
			ID:            m.Store.ID,
			DisplayName:   m.Store.DisplayName,
			ContactNumber: m.Store.ContactNumber,
		}
	}
	return dto
}
