package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/simosh/storefront/internal/domain"
)

// AdvisorUC answers product questions through the configured AI backend.
// It never returns an error to the caller: any failure degrades to a
// localized apology so the conversation keeps going.
type AdvisorUC struct {
	Store   domain.DocumentStore
	Advisor domain.Advisor
}

var advisorApologies = map[domain.Language]string{
	domain.LangUZ: "Kechirasiz, hozir javob bera olmayman. Birozdan so'ng qayta urinib ko'ring.",
	domain.LangRU: "Извините, сейчас не могу ответить. Попробуйте чуть позже.",
	domain.LangEN: "Sorry, I can't answer right now. Please try again in a moment.",
	domain.LangTR: "Üzgünüm, şu anda yanıt veremiyorum. Lütfen birazdan tekrar deneyin.",
}

func apology(lang domain.Language) string {
	if s, ok := advisorApologies[lang]; ok {
		return s
	}
	return advisorApologies[domain.LangUZ]
}

func (uc *AdvisorUC) Ask(ctx context.Context, prompt string, lang domain.Language) string {
	if uc.Advisor == nil {
		return apology(lang)
	}
	products, err := uc.productContext(ctx, lang)
	if err != nil {
		log.Warn().Err(err).Msg("advisor: product context unavailable")
	}
	answer, err := uc.Advisor.Respond(ctx, prompt, products, lang)
	if err != nil || answer == "" {
		log.Warn().Err(err).Msg("advisor call failed")
		return apology(lang)
	}
	return answer
}

func (uc *AdvisorUC) productContext(ctx context.Context, lang domain.Language) ([]domain.AdvisorProduct, error) {
	db, err := uc.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.AdvisorProduct{}
	for _, p := range db.Products {
		if p.Status != domain.ProductActive {
			continue
		}
		out = append(out, domain.AdvisorProduct{
			Name:        p.Name.In(lang),
			Description: p.Description.In(lang),
			Price:       p.Price,
		})
	}
	return out, nil
}
