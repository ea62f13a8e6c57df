package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simosh/storefront/internal/adapters/docstore"
	"github.com/simosh/storefront/internal/domain"
)

type fakeAdvisor struct {
	answer   string
	err      error
	gotLang  domain.Language
	gotProds []domain.AdvisorProduct
}

func (a *fakeAdvisor) Respond(_ context.Context, _ string, products []domain.AdvisorProduct, lang domain.Language) (string, error) {
	a.gotLang = lang
	a.gotProds = products
	return a.answer, a.err
}

func TestAdvisorAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("passes active catalog to the backend", func(t *testing.T) {
		store := docstore.NewMemory()
		active := soap("Lavender", 45000, 5)
		hidden := soap("Retired", 10000, 0)
		hidden.Status = domain.ProductInactive
		seedProduct(t, store, active)
		seedProduct(t, store, hidden)

		adv := &fakeAdvisor{answer: "Lavender sovuni tavsiya qilaman."}
		uc := &AdvisorUC{Store: store, Advisor: adv}

		got := uc.Ask(ctx, "Qaysi sovun yaxshi?", domain.LangUZ)
		assert.Equal(t, adv.answer, got)
		assert.Equal(t, domain.LangUZ, adv.gotLang)

		names := make([]string, 0, len(adv.gotProds))
		for _, p := range adv.gotProds {
			names = append(names, p.Name)
		}
		assert.Contains(t, names, "Lavender")
		assert.NotContains(t, names, "Retired")
	})

	t.Run("backend error degrades to localized apology", func(t *testing.T) {
		store := docstore.NewMemory()
		uc := &AdvisorUC{Store: store, Advisor: &fakeAdvisor{err: errors.New("rate limited")}}

		assert.Equal(t, advisorApologies[domain.LangRU], uc.Ask(ctx, "Что посоветуете?", domain.LangRU))
	})

	t.Run("empty answer treated as failure", func(t *testing.T) {
		store := docstore.NewMemory()
		uc := &AdvisorUC{Store: store, Advisor: &fakeAdvisor{answer: ""}}

		assert.Equal(t, advisorApologies[domain.LangEN], uc.Ask(ctx, "any soap?", domain.LangEN))
	})

	t.Run("nil advisor still answers", func(t *testing.T) {
		uc := &AdvisorUC{Store: docstore.NewMemory()}
		assert.Equal(t, advisorApologies[domain.LangTR], uc.Ask(ctx, "merhaba", domain.LangTR))
	})

	t.Run("unknown language falls back to uzbek apology", func(t *testing.T) {
		uc := &AdvisorUC{Store: docstore.NewMemory()}
		got := uc.Ask(ctx, "hola", domain.Language("es"))
		require.Equal(t, advisorApologies[domain.LangUZ], got)
	})
}
