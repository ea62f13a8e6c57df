package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simosh/storefront/internal/adapters/docstore"
	"github.com/simosh/storefront/internal/domain"
)

func TestCatalogProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("save assigns an id and upserts", func(t *testing.T) {
		uc := &CatalogUC{Store: docstore.NewMemory()}

		p := soap("Mint", 30000, 8)
		p.ID = uuid.Nil
		require.NoError(t, uc.SaveProduct(ctx, &p))
		require.NotEqual(t, uuid.Nil, p.ID)

		p.Price = 31000
		require.NoError(t, uc.SaveProduct(ctx, &p))

		got, err := uc.ProductByID(ctx, p.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 31000, got.Price)

		db, err := uc.Database(ctx)
		require.NoError(t, err)
		count := 0
		for _, dp := range db.Products {
			if dp.ID == p.ID {
				count++
			}
		}
		assert.Equal(t, 1, count, "second save must update, not duplicate")
	})

	t.Run("active listing hides inactive products", func(t *testing.T) {
		uc := &CatalogUC{Store: docstore.NewMemory()}
		hidden := soap("Retired", 10000, 0)
		hidden.Status = domain.ProductInactive
		require.NoError(t, uc.SaveProduct(ctx, &hidden))

		active, err := uc.ActiveProducts(ctx)
		require.NoError(t, err)
		for _, p := range active {
			assert.NotEqual(t, hidden.ID, p.ID)
		}
	})

	t.Run("delete removes only the target", func(t *testing.T) {
		uc := &CatalogUC{Store: docstore.NewMemory()}
		keep := soap("Keep", 20000, 1)
		gone := soap("Gone", 21000, 1)
		require.NoError(t, uc.SaveProduct(ctx, &keep))
		require.NoError(t, uc.SaveProduct(ctx, &gone))

		require.NoError(t, uc.DeleteProduct(ctx, gone.ID))

		_, err := uc.ProductByID(ctx, gone.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = uc.ProductByID(ctx, keep.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown product id", func(t *testing.T) {
		uc := &CatalogUC{Store: docstore.NewMemory()}
		_, err := uc.ProductByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCatalogPromos(t *testing.T) {
	ctx := context.Background()
	uc := &CatalogUC{Store: docstore.NewMemory()}

	promo := domain.PromoCode{Code: "simosh", DiscountType: domain.DiscountPercent, DiscountValue: 10}
	require.NoError(t, uc.SavePromo(ctx, &promo))
	require.NotEqual(t, uuid.Nil, promo.ID)
	assert.Equal(t, domain.PromoActive, promo.Status, "status defaults to active")

	db, err := uc.Database(ctx)
	require.NoError(t, err)
	require.Len(t, db.PromoCodes, 1)

	require.NoError(t, uc.DeletePromo(ctx, promo.ID))
	db, err = uc.Database(ctx)
	require.NoError(t, err)
	assert.Empty(t, db.PromoCodes)
}

func TestCatalogCompanyAndAbout(t *testing.T) {
	ctx := context.Background()
	uc := &CatalogUC{Store: docstore.NewMemory()}

	info := domain.CompanyInfo{Name: "Simosh", Phone: "+998 71 200 00 00", Email: "yangi@simosh.uz"}
	require.NoError(t, uc.UpdateCompanyInfo(ctx, info))

	about := domain.About{Title: domain.Text("Biz", "Мы", "Us", "Biz"), Body: domain.Text("a", "b", "c", "d")}
	require.NoError(t, uc.UpdateAbout(ctx, about))

	db, err := uc.Database(ctx)
	require.NoError(t, err)
	assert.Equal(t, "+998 71 200 00 00", db.CompanyInfo.Phone)
	assert.Equal(t, "Us", db.About.Title.In(domain.LangEN))
}
