package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Code identifies a supported UI language.
type Code string

const (
	LanguageKorean  Code = "ko"
	LanguageEnglish Code = "en"

	// DefaultLanguage is used when neither a stored choice nor an environment signal matches.
	DefaultLanguage = LanguageKorean

	// PreferenceKey names the durable key that stores the user's language choice.
	PreferenceKey = "userLanguage"
)

var supportedTags = []language.Tag{language.Korean, language.English}

var matcher = language.NewMatcher(supportedTags)

type Preference struct {
	Language Code
	Locale   string
	HTMLLang string
}

// Supported lists every language the site ships dictionaries for.
func Supported() []Code {
	return []Code{LanguageKorean, LanguageEnglish}
}

func (c Code) String() string {
	return string(c)
}

func (c Code) Valid() bool {
	return c == LanguageKorean || c == LanguageEnglish
}

func NormalizeLanguage(raw string) Code {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "ko") || trimmed == "kr" {
		return LanguageKorean
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

// LanguageFromAcceptLanguage picks the best supported language for an
// Accept-Language header, honouring q-values.
func LanguageFromAcceptLanguage(header string) Code {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(trimmed)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return ""
	}
	return NormalizeLanguage(supportedTags[index].String())
}

func PreferenceForLanguage(lang Code) Preference {
	if NormalizeLanguage(string(lang)) == LanguageEnglish {
		return Preference{Language: LanguageEnglish, Locale: "en_US", HTMLLang: "en"}
	}
	return Preference{Language: LanguageKorean, Locale: "ko_KR", HTMLLang: "ko"}
}
