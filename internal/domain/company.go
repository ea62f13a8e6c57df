package domain

type CompanyInfo struct {
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email"`
	Address   LocalizedText `json:"address"`
	Instagram string        `json:"instagram"`
	Telegram  string        `json:"telegram"`
	WorkHours LocalizedText `json:"workHours"`
}

type About struct {
	Title LocalizedText `json:"title"`
	Body  LocalizedText `json:"body"`
}
