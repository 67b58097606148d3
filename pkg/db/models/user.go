package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/loopstackhq/loopstack-backend/pkg/enums"
)

// User represents a registered store owner. Shoppers are anonymous and never
// appear in this table.
type User struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username  string           `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email     string           `gorm:"column:email;type:text;not null;uniqueIndex"`
	Status    enums.UserStatus `gorm:"column:status;type:user_status;not null;default:'active'"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
