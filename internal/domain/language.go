package domain

import "strings"

type Language string

const (
	LangUZ Language = "uz"
	LangRU Language = "ru"
	LangEN Language = "en"
	LangTR Language = "tr"
)

func Languages() []Language {
	return []Language{LangUZ, LangRU, LangEN, LangTR}
}

func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangRU:
		return LangRU
	case LangEN:
		return LangEN
	case LangTR:
		return LangTR
	default:
		return LangUZ
	}
}

// LocalizedText keeps one field per supported language so a missing
// translation is visible at construction time instead of at render time.
type LocalizedText struct {
	UZ string `json:"uz"`
	RU string `json:"ru"`
	EN string `json:"en"`
	TR string `json:"tr"`
}

func (t LocalizedText) In(lang Language) string {
	var v string
	switch lang {
	case LangRU:
		v = t.RU
	case LangEN:
		v = t.EN
	case LangTR:
		v = t.TR
	default:
		v = t.UZ
	}
	if v == "" {
		v = t.UZ
	}
	return v
}

func Text(uz, ru, en, tr string) LocalizedText {
	return LocalizedText{UZ: uz, RU: ru, EN: en, TR: tr}
}
