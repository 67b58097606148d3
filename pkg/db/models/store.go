package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/loopstackhq/loopstack-backend/pkg/types"
)

// Store represents the canonical tenant model: one storefront per owner.
type Store struct {
	ID            uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID       uuid.UUID             `gorm:"column:owner_id;type:uuid;not null;uniqueIndex"`
	DisplayName   string                `gorm:"column:display_name;not null"`
	Description   *string               `gorm:"column:description"`
	Email         *string               `gorm:"column:email"`
	LogoURL       *string               `gorm:"column:logo_url"`
	ContactNumber *string               `gorm:"column:contact_number"`
	AboutUs       *types.AboutUs        `gorm:"column:about_us;type:jsonb"`
	Contact       types.ContactChannels `gorm:"column:contact;type:jsonb"`
	BusinessHours types.BusinessHours   `gorm:"column:business_hours;type:jsonb"`
	QuickHelp     types.QuickHelp       `gorm:"column:quick_help;type:jsonb"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
