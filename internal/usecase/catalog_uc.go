package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/simosh/storefront/internal/domain"
)

// CatalogUC is both the storefront read side and the admin mutation layer.
// Every mutation is read-whole-document, change one collection, write-whole-
// document; identity matching is the only validation done here.
type CatalogUC struct {
	Store domain.DocumentStore
}

func (uc *CatalogUC) Database(ctx context.Context) (*domain.Database, error) {
	return uc.Store.Load(ctx)
}

func (uc *CatalogUC) ActiveProducts(ctx context.Context) ([]domain.Product, error) {
	db, err := uc.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	for _, p := range db.Products {
		if p.Status == domain.ProductActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (uc *CatalogUC) ProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	db, err := uc.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	p := db.ProductByID(id)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (uc *CatalogUC) SaveProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = domain.ProductActive
	}
	return uc.mutate(ctx, func(db *domain.Database) {
		for i := range db.Products {
			if db.Products[i].ID == p.ID {
				db.Products[i] = *p
				return
			}
		}
		db.Products = append(db.Products, *p)
	})
}

func (uc *CatalogUC) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return uc.mutate(ctx, func(db *domain.Database) {
		out := db.Products[:0]
		for _, p := range db.Products {
			if p.ID != id {
				out = append(out, p)
			}
		}
		db.Products = out
	})
}

func (uc *CatalogUC) SaveCategory(ctx context.Context, c *domain.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return uc.mutate(ctx, func(db *domain.Database) {
		for i := range db.Categories {
			if db.Categories[i].ID == c.ID {
				db.Categories[i] = *c
				return
			}
		}
		db.Categories = append(db.Categories, *c)
	})
}

func (uc *CatalogUC) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return uc.mutate(ctx, func(db *domain.Database) {
		out := db.Categories[:0]
		for _, c := range db.Categories {
			if c.ID != id {
				out = append(out, c)
			}
		}
		db.Categories = out
	})
}

func (uc *CatalogUC) SavePromo(ctx context.Context, p *domain.PromoCode) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = domain.PromoActive
	}
	return uc.mutate(ctx, func(db *domain.Database) {
		for i := range db.PromoCodes {
			if db.PromoCodes[i].ID == p.ID {
				db.PromoCodes[i] = *p
				return
			}
		}
		db.PromoCodes = append(db.PromoCodes, *p)
	})
}

func (uc *CatalogUC) DeletePromo(ctx context.Context, id uuid.UUID) error {
	return uc.mutate(ctx, func(db *domain.Database) {
		out := db.PromoCodes[:0]
		for _, p := range db.PromoCodes {
			if p.ID != id {
				out = append(out, p)
			}
		}
		db.PromoCodes = out
	})
}

func (uc *CatalogUC) UpdateCompanyInfo(ctx context.Context, info domain.CompanyInfo) error {
	return uc.mutate(ctx, func(db *domain.Database) { db.CompanyInfo = info })
}

func (uc *CatalogUC) UpdateAbout(ctx context.Context, about domain.About) error {
	return uc.mutate(ctx, func(db *domain.Database) { db.About = about })
}

func (uc *CatalogUC) mutate(ctx context.Context, fn func(db *domain.Database)) error {
	db, err := uc.Store.Load(ctx)
	if err != nil {
		return err
	}
	fn(db)
	return uc.Store.Save(ctx, db)
}
