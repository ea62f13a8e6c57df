package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simosh/storefront/internal/adapters/docstore"
	"github.com/simosh/storefront/internal/domain"
)

type fakeNotifier struct {
	ok   bool
	msgs []string
}

func (n *fakeNotifier) Notify(_ context.Context, msg string) bool {
	n.msgs = append(n.msgs, msg)
	return n.ok
}

// brokenSaveStore lets loads through but fails every save.
type brokenSaveStore struct {
	domain.DocumentStore
}

func (s *brokenSaveStore) Save(context.Context, *domain.Database) error {
	return errors.New("disk full")
}

func seedProduct(t *testing.T, store domain.DocumentStore, p domain.Product) {
	t.Helper()
	ctx := context.Background()
	db, err := store.Load(ctx)
	require.NoError(t, err)
	db.Products = append(db.Products, p)
	require.NoError(t, store.Save(ctx, db))
}

func orderFor(p domain.Product, qty int) *domain.Order {
	return &domain.Order{
		ID:        uuid.New(),
		FirstName: "Aziza",
		Phone:     "+998901234567",
		Items: []domain.OrderItem{{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			UnitPrice: p.Price,
			Qty:       qty,
		}},
		Subtotal:   p.Price * int64(qty),
		TotalPrice: p.Price * int64(qty),
		Status:     domain.OrderPending,
		Language:   domain.LangUZ,
		CreatedAt:  time.Now(),
	}
}

func TestOrderCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists order and decrements stock", func(t *testing.T) {
		store := docstore.NewMemory()
		p := soap("Lavender", 45000, 5)
		seedProduct(t, store, p)

		uc := &OrderUC{Store: store, Notifier: &fakeNotifier{ok: true}}
		notified, err := uc.Create(ctx, orderFor(p, 2))
		require.NoError(t, err)
		assert.True(t, notified)

		db, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, db.Orders, 1)
		assert.Equal(t, 3, db.ProductByID(p.ID).Stock)
	})

	t.Run("stock may go negative", func(t *testing.T) {
		store := docstore.NewMemory()
		p := soap("Olive", 38000, 5)
		seedProduct(t, store, p)

		uc := &OrderUC{Store: store}
		_, err := uc.Create(ctx, orderFor(p, 7))
		require.NoError(t, err)

		db, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, -2, db.ProductByID(p.ID).Stock)
	})

	t.Run("failed notification does not block the order", func(t *testing.T) {
		store := docstore.NewMemory()
		p := soap("Honey", 50000, 5)
		seedProduct(t, store, p)

		uc := &OrderUC{Store: store, Notifier: &fakeNotifier{ok: false}}
		notified, err := uc.Create(ctx, orderFor(p, 1))
		require.NoError(t, err)
		assert.False(t, notified)

		db, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, db.Orders, 1)
	})

	t.Run("nil notifier reports not notified", func(t *testing.T) {
		store := docstore.NewMemory()
		p := soap("Gift", 160000, 5)
		seedProduct(t, store, p)

		uc := &OrderUC{Store: store}
		notified, err := uc.Create(ctx, orderFor(p, 1))
		require.NoError(t, err)
		assert.False(t, notified)
	})

	t.Run("failed save surfaces and leaves stock untouched", func(t *testing.T) {
		mem := docstore.NewMemory()
		p := soap("Rose", 42000, 5)
		seedProduct(t, mem, p)

		uc := &OrderUC{Store: &brokenSaveStore{DocumentStore: mem}, Notifier: &fakeNotifier{ok: true}}
		_, err := uc.Create(ctx, orderFor(p, 2))
		require.Error(t, err)

		db, err := mem.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, db.Orders)
		assert.Equal(t, 5, db.ProductByID(p.ID).Stock)
	})

	t.Run("notification message carries order details", func(t *testing.T) {
		store := docstore.NewMemory()
		p := soap("Lavender", 45000, 5)
		seedProduct(t, store, p)

		n := &fakeNotifier{ok: true}
		uc := &OrderUC{Store: store, Notifier: n}
		o := orderFor(p, 2)
		o.AppliedPromo = "simosh"
		o.DiscountAmount = 9000
		o.TotalPrice = 81000
		_, err := uc.Create(ctx, o)
		require.NoError(t, err)

		require.Len(t, n.msgs, 1)
		assert.Contains(t, n.msgs[0], "Aziza")
		assert.Contains(t, n.msgs[0], "simosh")
		assert.Contains(t, n.msgs[0], "81000 so'm")
	})
}

func TestOrderSetStatus(t *testing.T) {
	ctx := context.Background()

	newOrder := func(t *testing.T, store domain.DocumentStore) uuid.UUID {
		t.Helper()
		p := soap("Lavender", 45000, 5)
		seedProduct(t, store, p)
		o := orderFor(p, 1)
		uc := &OrderUC{Store: store}
		_, err := uc.Create(ctx, o)
		require.NoError(t, err)
		return o.ID
	}

	t.Run("pending to completed", func(t *testing.T) {
		store := docstore.NewMemory()
		id := newOrder(t, store)
		uc := &OrderUC{Store: store}

		require.NoError(t, uc.SetStatus(ctx, id, domain.OrderCompleted))
		got, err := uc.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderCompleted, got.Status)
	})

	t.Run("re-review path back to pending", func(t *testing.T) {
		store := docstore.NewMemory()
		id := newOrder(t, store)
		uc := &OrderUC{Store: store}

		require.NoError(t, uc.SetStatus(ctx, id, domain.OrderCancelled))
		require.NoError(t, uc.SetStatus(ctx, id, domain.OrderPending))
		got, err := uc.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderPending, got.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		store := docstore.NewMemory()
		id := newOrder(t, store)
		uc := &OrderUC{Store: store}

		assert.Error(t, uc.SetStatus(ctx, id, domain.OrderStatus("SHIPPED")))
	})

	t.Run("unknown order id", func(t *testing.T) {
		store := docstore.NewMemory()
		uc := &OrderUC{Store: store}
		err := uc.SetStatus(ctx, uuid.New(), domain.OrderCompleted)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestOrderList(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	p := soap("Lavender", 45000, 100)
	seedProduct(t, store, p)

	uc := &OrderUC{Store: store}
	first := orderFor(p, 1)
	second := orderFor(p, 2)
	_, err := uc.Create(ctx, first)
	require.NoError(t, err)
	_, err = uc.Create(ctx, second)
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest order comes first")
	assert.Equal(t, first.ID, list[1].ID)
}
