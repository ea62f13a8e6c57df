package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want Language
	}{
		{"uz", LangUZ},
		{"ru", LangRU},
		{"EN", LangEN},
		{" tr ", LangTR},
		{"", LangUZ},
		{"fr", LangUZ},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseLanguage(tc.in), "input %q", tc.in)
	}
}

func TestLocalizedTextIn(t *testing.T) {
	full := Text("sovun", "мыло", "soap", "sabun")
	assert.Equal(t, "sovun", full.In(LangUZ))
	assert.Equal(t, "мыло", full.In(LangRU))
	assert.Equal(t, "soap", full.In(LangEN))
	assert.Equal(t, "sabun", full.In(LangTR))

	t.Run("missing translation falls back to uzbek", func(t *testing.T) {
		partial := LocalizedText{UZ: "sovun"}
		assert.Equal(t, "sovun", partial.In(LangEN))
		assert.Equal(t, "sovun", partial.In(Language("fr")))
	})
}
