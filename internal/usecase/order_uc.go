package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/simosh/storefront/internal/domain"
)

// OrderUC drives the order lifecycle: creation with stock adjustment and
// best-effort notification, and admin status changes.
type OrderUC struct {
	Store         domain.DocumentStore
	Notifier      domain.Notifier
	NotifyTimeout time.Duration
}

// Create notifies, persists the order and then decrements stock.
//
// Notification runs first under its own timeout; its outcome is returned
// separately and never blocks the order. The order is persisted before stock
// is touched so a failed save cannot leave stock decremented; the price of
// that ordering is a window where a crash after the first save leaves stock
// stale, which the single-writer model tolerates.
func (uc *OrderUC) Create(ctx context.Context, o *domain.Order) (notified bool, err error) {
	notified = uc.notify(ctx, o)

	db, err := uc.Store.Load(ctx)
	if err != nil {
		return notified, fmt.Errorf("load document: %w", err)
	}
	db.Orders = append(db.Orders, *o)
	if err := uc.Store.Save(ctx, db); err != nil {
		return notified, fmt.Errorf("persist order: %w", err)
	}

	for _, it := range o.Items {
		p := db.ProductByID(it.ProductID)
		if p == nil {
			continue
		}
		p.Stock -= it.Qty
		if p.Stock < 0 {
			// Tolerated: a data-quality signal for ops, not a checkout error.
			log.Warn().Str("sku", p.SKU).Int("stock", p.Stock).Msg("stock went negative")
		}
	}
	if err := uc.Store.Save(ctx, db); err != nil {
		log.Error().Err(err).Str("order", o.ID.String()).Msg("stock adjustment not persisted")
	}
	return notified, nil
}

// SetStatus overwrites the order status without a transition table. Any state
// is reachable from any state on purpose: the admin uses COMPLETED/CANCELLED
// back to PENDING as a re-review escape hatch.
func (uc *OrderUC) SetStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	switch status {
	case domain.OrderPending, domain.OrderCompleted, domain.OrderCancelled:
	default:
		return fmt.Errorf("unknown order status %q", status)
	}
	db, err := uc.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	o := db.OrderByID(id)
	if o == nil {
		return domain.ErrNotFound
	}
	o.Status = status
	return uc.Store.Save(ctx, db)
}

func (uc *OrderUC) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	db, err := uc.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	o := db.OrderByID(id)
	if o == nil {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (uc *OrderUC) List(ctx context.Context) ([]domain.Order, error) {
	db, err := uc.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	// newest first
	out := make([]domain.Order, len(db.Orders))
	for i, o := range db.Orders {
		out[len(db.Orders)-1-i] = o
	}
	return out, nil
}

func (uc *OrderUC) notify(ctx context.Context, o *domain.Order) bool {
	if uc.Notifier == nil {
		return false
	}
	timeout := uc.NotifyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	nctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return uc.Notifier.Notify(nctx, FormatOrderMessage(o))
}

func FormatOrderMessage(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Yangi buyurtma #%s\n", o.ID.String()[:8])
	fmt.Fprintf(&b, "Mijoz: %s %s\nTel: %s\n", o.FirstName, o.LastName, o.Phone)
	if o.Comment != "" {
		fmt.Fprintf(&b, "Izoh: %s\n", o.Comment)
	}
	b.WriteString("Mahsulotlar:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s x%d — %d so'm\n", it.Name.In(domain.LangUZ), it.Qty, it.UnitPrice)
	}
	if o.AppliedPromo != "" {
		fmt.Fprintf(&b, "Promokod: %s (-%d so'm)\n", o.AppliedPromo, o.DiscountAmount)
	}
	fmt.Fprintf(&b, "Jami: %d so'm", o.TotalPrice)
	return b.String()
}
