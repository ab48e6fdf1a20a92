package translate

import (
	"fmt"
	"strings"
)

type Language string

const (
	English    Language = "en"
	Spanish    Language = "es"
	French     Language = "fr"
	German     Language = "de"
	Italian    Language = "it"
	Portuguese Language = "pt"
	Dutch      Language = "nl"
	Polish     Language = "pl"
	Russian    Language = "ru"
	Japanese   Language = "ja"
	Chinese    Language = "zh"
	Korean     Language = "ko"
	Arabic     Language = "ar"
)

var languages = []Language{
	English, Spanish, French, German, Italian, Portuguese, Dutch,
	Polish, Russian, Japanese, Chinese, Korean, Arabic,
}

// Languages lists the supported codes in a stable order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

func (l Language) Valid() bool {
	for _, v := range languages {
		if v == l {
			return true
		}
	}
	return false
}

func (l Language) String() string { return string(l) }

// ParseLanguage accepts a supported code in any letter case.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return l, nil
}
