package app

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/simosh/storefront/internal/adapters/advisor"
	"github.com/simosh/storefront/internal/adapters/docstore"
	"github.com/simosh/storefront/internal/adapters/httpserver"
	"github.com/simosh/storefront/internal/adapters/notify"
	"github.com/simosh/storefront/internal/adapters/scraper"
	"github.com/simosh/storefront/internal/config"
	"github.com/simosh/storefront/internal/domain"
	"github.com/simosh/storefront/internal/usecase"
)

type App struct {
	Store    domain.DocumentStore
	Catalog  *usecase.CatalogUC
	Checkout *usecase.CheckoutUC
	Orders   *usecase.OrderUC
	Advisor  *usecase.AdvisorUC

	cfg config.Config
}

func New(cfg config.Config) (*App, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	channels := []notify.Channel{}
	if cfg.TelegramToken != "" && cfg.TelegramChatIDs != "" {
		channels = append(channels, notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatIDs))
	}
	if cfg.SMTPHost != "" && cfg.NotifyEmail != "" {
		channels = append(channels, notify.NewEmail(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.NotifyEmail))
	}
	if len(channels) == 0 {
		log.Warn().Msg("no notification channels configured, orders will not notify")
	}

	advisorUC := &usecase.AdvisorUC{Store: store}
	if cfg.OpenAIKey != "" {
		advisorUC.Advisor = advisor.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel)
	} else {
		log.Warn().Msg("no OpenAI key configured, advisor will only apologize")
	}

	a := &App{
		Store:    store,
		Catalog:  &usecase.CatalogUC{Store: store},
		Checkout: &usecase.CheckoutUC{},
		Orders: &usecase.OrderUC{
			Store:         store,
			Notifier:      notify.New(channels...),
			NotifyTimeout: cfg.NotifyTimeout,
		},
		Advisor: advisorUC,
		cfg:     cfg,
	}
	return a, nil
}

func newStore(cfg config.Config) (domain.DocumentStore, error) {
	if cfg.DatabaseDSN == "" {
		log.Info().Str("path", cfg.DocumentPath).Msg("using file document store")
		return docstore.NewFile(cfg.DocumentPath), nil
	}
	db, err := gorm.Open(gormpg.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	store := docstore.NewPostgres(db)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

func (a *App) HTTPHandler() http.Handler {
	var oauthCfg *oauth2.Config
	if a.cfg.GoogleClientID != "" && a.cfg.GoogleClientSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     a.cfg.GoogleClientID,
			ClientSecret: a.cfg.GoogleClientSecret,
			RedirectURL:  a.cfg.BaseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	return httpserver.New(httpserver.Options{
		Catalog:    a.Catalog,
		Checkout:   a.Checkout,
		Orders:     a.Orders,
		Advisor:    a.Advisor,
		Images:     scraper.NewImageScraper(),
		OAuth:      oauthCfg,
		AdminEmail: a.cfg.AdminEmail,
		AdminPass:  a.cfg.AdminPassword,
		JWTSecret:  a.cfg.JWTSecret,
		SessionKey: a.cfg.SessionKey,
	})
}
