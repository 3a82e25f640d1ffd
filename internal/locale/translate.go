package locale

// Pick returns the text matching the request language, defaulting to Korean.
func Pick(lang Code, english, korean string) string {
	if NormalizeLanguage(string(lang)) == LanguageEnglish {
		if english != "" {
			return english
		}
		return korean
	}
	if korean != "" {
		return korean
	}
	return english
}
