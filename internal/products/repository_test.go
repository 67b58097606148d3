package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
	"github.com/loopstackhq/loopstack-backend/pkg/enums"
	"github.com/loopstackhq/loopstack-backend/pkg/pagination"
)

func TestRepositoryCatalogFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	user := mustCreateTestUser(t, tx)
	store := mustCreateTestStore(t, tx, user.ID)

	popular := mustCreateTestProduct(t, tx, store.ID, func(p *models.Product) {
		p.Name = "Walnut Bowl"
		p.TotalViews = 50
	})
	special := mustCreateTestProduct(t, tx, store.ID, func(p *models.Product) {
		p.Name = "Gift Hamper"
		p.Category = enums.ProductCategorySpecial
		p.KeyFeatures = append(p.KeyFeatures, "festive")
	})
	mustCreateTestProduct(t, tx, store.ID, func(p *models.Product) {
		p.Name = "Hidden Item"
		p.SoftDelete = true
	})

	t.Run("list excludes soft deleted", func(t *testing.T) {
		rows, total, err := repo.List(ctx, ListInput{
			StoreID:    store.ID,
			Pagination: pagination.Params{Page: 1, Limit: 10},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 2 || len(rows) != 2 {
			t.Fatalf("expected 2 visible products, got total=%d rows=%d", total, len(rows))
		}
	})

	t.Run("list filters category", func(t *testing.T) {
		category := enums.ProductCategorySpecial
		rows, total, err := repo.List(ctx, ListInput{
			StoreID:    store.ID,
			Filters:    ListFilters{Category: &category},
			Pagination: pagination.Params{Page: 1, Limit: 10},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 1 || len(rows) != 1 || rows[0].ID != special.ID {
			t.Fatalf("category filter mismatch: total=%d", total)
		}
	})

	t.Run("list searches key features", func(t *testing.T) {
		rows, _, err := repo.List(ctx, ListInput{
			StoreID:    store.ID,
			Filters:    ListFilters{Search: "FESTIVE"},
			Pagination: pagination.Params{Page: 1, Limit: 10},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 1 || rows[0].ID != special.ID {
			t.Fatalf("search mismatch: %d rows", len(rows))
		}
	})

	t.Run("distinct categories", func(t *testing.T) {
		categories, err := repo.DistinctCategories(ctx, store.ID)
		if err != nil {
			t.Fatalf("distinct: %v", err)
		}
		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %v", categories)
		}
	})

	t.Run("detail and related", func(t *testing.T) {
		detail, err := repo.FindDetail(ctx, store.ID, popular.ID)
		if err != nil {
			t.Fatalf("detail: %v", err)
		}
		if detail.Name != "Walnut Bowl" {
			t.Fatalf("detail name = %q", detail.Name)
		}

		related, err := repo.Related(ctx, store.ID, popular.Category, popular.ID)
		if err != nil {
			t.Fatalf("related: %v", err)
		}
		for _, row := range related {
			if row.ID == popular.ID {
				t.Fatal("related must exclude the product itself")
			}
		}

		more, err := repo.MoreFromStore(ctx, store.ID, popular.ID)
		if err != nil {
			t.Fatalf("more from store: %v", err)
		}
		if len(more) != 1 || more[0].ID != special.ID {
			t.Fatalf("more from store mismatch: %d rows", len(more))
		}
	})

	t.Run("increment views", func(t *testing.T) {
		if err := repo.IncrementViews(ctx, popular.ID); err != nil {
			t.Fatalf("increment: %v", err)
		}
		detail, err := repo.FindDetail(ctx, store.ID, popular.ID)
		if err != nil {
			t.Fatalf("detail: %v", err)
		}
		if detail.TotalViews != 51 {
			t.Fatalf("total views = %d, want 51", detail.TotalViews)
		}
	})

	t.Run("find for cart", func(t *testing.T) {
		offer := decimal.NewFromInt(80)
		discounted := mustCreateTestProduct(t, tx, store.ID, func(p *models.Product) {
			p.Name = "Discounted"
			p.OfferPrice = &offer
		})
		mustCreateTestProduct(t, tx, store.ID, func(p *models.Product) {
			p.Name = "Sold Out"
			p.InStock = false
		})

		rows, err := repo.FindForCart(ctx, []uuid.UUID{discounted.ID, popular.ID, uuid.New()})
		if err != nil {
			t.Fatalf("find for cart: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		for _, row := range rows {
			if row.Store == nil || row.Store.ID != store.ID {
				t.Fatalf("store not preloaded on %s", row.Name)
			}
		}
	})
}
