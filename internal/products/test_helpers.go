package products

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
	"github.com/loopstackhq/loopstack-backend/pkg/enums"
)

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Username: fmt.Sprintf("ls_test_%s", uuid.NewString()[:8]),
		Email:    fmt.Sprintf("ls_test_%s@example.com", uuid.NewString()),
		Status:   enums.UserStatusActive,
	}
	require.NoError(t, tx.Create(user).Error, "create user")
	return user
}

func mustCreateTestStore(t *testing.T, tx *gorm.DB, ownerID uuid.UUID) *models.Store {
	t.Helper()
	store := &models.Store{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		DisplayName: "Repo Store",
	}
	require.NoError(t, tx.Create(store).Error, "create store")
	return store
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, storeID uuid.UUID, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:            uuid.New(),
		StoreID:       storeID,
		Name:          "Test Product",
		Description:   "A product used in repository tests",
		Category:      enums.ProductCategoryPopular,
		Images:        pq.StringArray{"https://cdn.example.com/p.png"},
		ActualPrice:   decimal.NewFromInt(100),
		TotalQuantity: 5,
		InStock:       true,
		KeyFeatures:   pq.StringArray{"handmade"},
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, tx.Create(product).Error, "create product")
	return product
}
