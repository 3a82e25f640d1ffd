package tools

import (
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/skilllab/internal/locale"
)

// KeywordsPerKind is how many nouns and adjectives a draw contains.
const KeywordsPerKind = 3

var koreanNouns = []string{
	"바다", "산", "별", "꿈", "여행", "책", "음악", "햇살", "바람", "구름",
	"꽃", "나무", "새", "달", "강", "숲", "길", "집", "친구", "사랑",
}

var koreanAdjectives = []string{
	"아름다운", "신비로운", "따뜻한", "차가운", "밝은", "어두운", "큰", "작은", "빠른", "느린",
	"새로운", "오래된", "깊은", "높은", "넓은", "좁은", "강한", "약한", "부드러운", "거친",
}

// Keywords is one daily-keyword draw: nouns first, then adjectives.
type Keywords struct {
	Words []string
}

// Joined returns the words separated by commas, as copied to the clipboard.
func (k Keywords) Joined() string {
	return strings.Join(k.Words, ", ")
}

// GenerateKeywords draws KeywordsPerKind distinct nouns and adjectives in lang.
// Korean words come from a fixed list; English words from the faker corpus.
func GenerateKeywords(faker *gofakeit.Faker, lang locale.Code) Keywords {
	if lang == locale.LanguageEnglish {
		words := distinct(faker.Noun, KeywordsPerKind)
		words = append(words, distinct(faker.Adjective, KeywordsPerKind)...)
		return Keywords{Words: words}
	}
	words := pick(faker, koreanNouns, KeywordsPerKind)
	words = append(words, pick(faker, koreanAdjectives, KeywordsPerKind)...)
	return Keywords{Words: words}
}

func pick(faker *gofakeit.Faker, list []string, n int) []string {
	shuffled := append([]string(nil), list...)
	faker.ShuffleAnySlice(shuffled)
	return shuffled[:n]
}

func distinct(next func() string, n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for attempts := 0; len(out) < n && attempts < n*20; attempts++ {
		w := strings.ToLower(strings.TrimSpace(next()))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
