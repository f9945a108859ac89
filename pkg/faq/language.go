package faq

import (
	"golang.org/x/text/language"
)

// Language is a supported two-letter language code.
type Language string

const DefaultLanguage Language = "en"

// supportedLanguages is the single source for language support. Adding a
// language means adding it here and to the prompt tables.
var supportedLanguages = []language.Tag{
	language.English,
	language.Vietnamese,
	language.French,
	language.Spanish,
	language.German,
	language.Chinese,
	language.Japanese,
	language.Korean,
}

// ParseLanguage normalises a BCP 47 tag ("en-US", "zh-Hant", "FR") to its
// base language. Empty, malformed and unsupported tags fall back to
// DefaultLanguage.
func ParseLanguage(s string) Language {
	if s == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLanguage
	}
	base, _ := tag.Base()
	for _, supported := range supportedLanguages {
		if b, _ := supported.Base(); b == base {
			return Language(base.String())
		}
	}
	return DefaultLanguage
}

// SupportedLanguages lists the accepted codes in display order.
func SupportedLanguages() []Language {
	out := make([]Language, 0, len(supportedLanguages))
	for _, t := range supportedLanguages {
		b, _ := t.Base()
		out = append(out, Language(b.String()))
	}
	return out
}

func (l Language) String() string { return string(l) }
