package domain

import (
	"context"

	"github.com/google/uuid"
)

// Database is the single aggregate document the whole storefront runs on.
// It is read wholesale and written wholesale; there are no partial-document
// transactions and the last writer wins.
type Database struct {
	CompanyInfo CompanyInfo `json:"companyInfo"`
	Categories  []Category  `json:"categories"`
	Products    []Product   `json:"products"`
	PromoCodes  []PromoCode `json:"promoCodes"`
	Orders      []Order     `json:"orders"`
	About       About       `json:"about"`
}

// DocumentStore owns the canonical document. Load returns a seeded default
// when nothing has been stored yet. Callers doing read-modify-write are the
// single logical writer; concurrent admin tabs can clobber each other.
type DocumentStore interface {
	Load(ctx context.Context) (*Database, error)
	Save(ctx context.Context, db *Database) error
}

// Notifier delivers an order message to the configured channels. It never
// fails the caller; false just means nobody accepted delivery.
type Notifier interface {
	Notify(ctx context.Context, message string) bool
}

// AdvisorProduct is the slice of catalog state handed to the AI advisor.
type AdvisorProduct struct {
	Name        string
	Description string
	Price       int64
}

type Advisor interface {
	Respond(ctx context.Context, prompt string, products []AdvisorProduct, lang Language) (string, error)
}

func (d *Database) ProductByID(id uuid.UUID) *Product {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i]
		}
	}
	return nil
}

func (d *Database) OrderByID(id uuid.UUID) *Order {
	for i := range d.Orders {
		if d.Orders[i].ID == id {
			return &d.Orders[i]
		}
	}
	return nil
}

// MergeDefaults fills top-level sections a stored document from an older
// schema may be missing, so a load never comes back half-empty.
func (d *Database) MergeDefaults() {
	def := DefaultDatabase()
	if d.CompanyInfo == (CompanyInfo{}) {
		d.CompanyInfo = def.CompanyInfo
	}
	if d.Categories == nil {
		d.Categories = def.Categories
	}
	if d.Products == nil {
		d.Products = def.Products
	}
	if d.PromoCodes == nil {
		d.PromoCodes = []PromoCode{}
	}
	if d.Orders == nil {
		d.Orders = []Order{}
	}
	if d.About == (About{}) {
		d.About = def.About
	}
}

func DefaultDatabase() *Database {
	catClassic := Category{ID: uuid.New(), Name: Text("Klassik sovunlar", "Классическое мыло", "Classic soaps", "Klasik sabunlar")}
	catGift := Category{ID: uuid.New(), Name: Text("Sovg'a to'plamlari", "Подарочные наборы", "Gift sets", "Hediye setleri")}
	return &Database{
		CompanyInfo: CompanyInfo{
			Name:      "Simosh",
			Phone:     "+998 90 123 45 67",
			Email:     "salom@simosh.uz",
			Address:   Text("Toshkent, Chilonzor 5", "Ташкент, Чиланзар 5", "Tashkent, Chilanzar 5", "Taşkent, Çilanzar 5"),
			Instagram: "https://instagram.com/simosh.soap",
			Telegram:  "https://t.me/simoshsoap",
			WorkHours: Text("Har kuni 9:00–20:00", "Ежедневно 9:00–20:00", "Daily 9:00–20:00", "Her gün 9:00–20:00"),
		},
		Categories: []Category{catClassic, catGift},
		Products: []Product{
			{
				ID:          uuid.New(),
				SKU:         "SIM-LAV-01",
				Name:        Text("Lavanda sovuni", "Лавандовое мыло", "Lavender soap", "Lavanta sabunu"),
				Description: Text("Qo'lda tayyorlangan lavanda sovuni", "Мыло ручной работы с лавандой", "Handmade soap with lavender oil", "Lavanta yağlı el yapımı sabun"),
				Price:       45000,
				Stock:       24,
				Status:      ProductActive,
				CategoryID:  catClassic.ID,
			},
			{
				ID:          uuid.New(),
				SKU:         "SIM-OLV-01",
				Name:        Text("Zaytun sovuni", "Оливковое мыло", "Olive oil soap", "Zeytinyağı sabunu"),
				Description: Text("Sof zaytun moyidan", "Из чистого оливкового масла", "Pressed from pure olive oil", "Saf zeytinyağından"),
				Price:       38000,
				Stock:       30,
				Status:      ProductActive,
				CategoryID:  catClassic.ID,
			},
			{
				ID:          uuid.New(),
				SKU:         "SIM-GFT-01",
				Name:        Text("Bayram to'plami", "Праздничный набор", "Holiday gift set", "Bayram seti"),
				Description: Text("To'rt xil sovun bir qutida", "Четыре вида мыла в одной коробке", "Four soaps in one box", "Bir kutuda dört sabun"),
				Price:       160000,
				Stock:       10,
				Status:      ProductActive,
				CategoryID:  catGift.ID,
			},
		},
		PromoCodes: []PromoCode{},
		Orders:     []Order{},
		About: About{
			Title: Text("Simosh haqida", "О Simosh", "About Simosh", "Simosh hakkında"),
			Body:  Text("Tabiiy sovunlar ustaxonasi", "Мастерская натурального мыла", "A small workshop of natural soaps", "Doğal sabun atölyesi"),
		},
	}
}
