package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/loopstackhq/loopstack-backend/pkg/types"
)

// SocialLinks holds one link-in-bio document per store.
type SocialLinks struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID            `gorm:"column:store_id;type:uuid;not null;uniqueIndex"`
	Links     types.SocialLinkList `gorm:"column:links;type:jsonb;not null"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
