package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/loopstackhq/loopstack-backend/pkg/enums"
)

// Product represents a storefront listing. Prices are stored as numeric so
// money never round-trips through binary floats.
type Product struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID           uuid.UUID             `gorm:"column:store_id;type:uuid;not null;index"`
	Name              string                `gorm:"column:name;not null"`
	Description       string                `gorm:"column:description;not null;default:''"`
	Category          enums.ProductCategory `gorm:"column:category;type:product_category;not null"`
	Images            pq.StringArray        `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	ActualPrice       decimal.Decimal       `gorm:"column:actual_price;type:numeric(12,2);not null"`
	OfferPrice        *decimal.Decimal      `gorm:"column:offer_price;type:numeric(12,2)"`
	TotalQuantity     int                   `gorm:"column:total_quantity;not null"`
	AvailableLocation string                `gorm:"column:available_location;not null;default:''"`
	InStock           bool                  `gorm:"column:in_stock;not null;default:true"`
	KeyFeatures       pq.StringArray        `gorm:"column:key_features;type:text[];not null;default:ARRAY[]::text[]"`
	TotalViews        int                   `gorm:"column:total_views;not null;default:0"`
	TotalBuys         int                   `gorm:"column:total_buys;not null;default:0"`
	SoftDelete        bool                  `gorm:"column:soft_delete;not null;default:false"`
	Store             *Store                `gorm:"foreignKey:StoreID"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice returns the offer price when one is set and positive,
// otherwise the actual price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.OfferPrice != nil && p.OfferPrice.IsPositive() {
		return *p.OfferPrice
	}
	return p.ActualPrice
}

// DiscountPercent derives the rounded discount badge value from the two
// prices, 0 when there is no active offer.
func (p Product) DiscountPercent() int {
	if p.OfferPrice == nil || !p.OfferPrice.IsPositive() || p.ActualPrice.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	if p.OfferPrice.GreaterThanOrEqual(p.ActualPrice) {
		return 0
	}
	diff := p.ActualPrice.Sub(*p.OfferPrice)
	pct := diff.Div(p.ActualPrice).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}
