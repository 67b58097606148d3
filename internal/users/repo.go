package users

import (
	"context"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
)

// usernames are stored lowercase and limited to url-safe characters
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidUsername reports whether the raw path segment can be a store username.
func ValidUsername(raw string) bool {
	return usernamePattern.MatchString(raw)
}

// Normalize folds a username to its canonical stored form.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Repository handles user persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to user operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUsername loads a user by canonical username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", Normalize(username)).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
