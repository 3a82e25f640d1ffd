package locale

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  Code
	}{
		{input: "ko", want: LanguageKorean},
		{input: "ko-KR", want: LanguageKorean},
		{input: "KO_kr", want: LanguageKorean},
		{input: "en", want: LanguageEnglish},
		{input: "en-US", want: LanguageEnglish},
		{input: "fr", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := NormalizeLanguage(tc.input); got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLanguageFromAcceptLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  Code
	}{
		{input: "ko-KR,ko;q=0.9", want: LanguageKorean},
		{input: "en-US,en;q=0.9", want: LanguageEnglish},
		{input: "fr-FR,en;q=0.8,ko;q=0.5", want: LanguageEnglish},
		{input: "fr-FR,fr;q=0.9", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := LanguageFromAcceptLanguage(tc.input); got != tc.want {
			t.Fatalf("LanguageFromAcceptLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPreferenceForLanguage(t *testing.T) {
	pref := PreferenceForLanguage(LanguageEnglish)
	if pref.Language != LanguageEnglish {
		t.Fatalf("expected language %q, got %q", LanguageEnglish, pref.Language)
	}
	if pref.Locale != "en_US" {
		t.Fatalf("expected locale en_US, got %q", pref.Locale)
	}

	fallback := PreferenceForLanguage("")
	if fallback.Language != LanguageKorean {
		t.Fatalf("expected fallback language %q, got %q", LanguageKorean, fallback.Language)
	}
	if fallback.HTMLLang != "ko" {
		t.Fatalf("expected html lang ko, got %q", fallback.HTMLLang)
	}
}

func TestPick(t *testing.T) {
	if got := Pick("en", "english", "korean"); got != "english" {
		t.Fatalf("Pick(en) = %q, want %q", got, "english")
	}
	if got := Pick("ko", "english", "korean"); got != "korean" {
		t.Fatalf("Pick(ko) = %q, want %q", got, "korean")
	}
	if got := Pick("fr", "english", ""); got != "english" {
		t.Fatalf("Pick(fr) = %q, want %q", got, "english")
	}
}
