package tools

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skilllab/internal/locale"
)

// ErrUnknownMode is returned for transformations the text tool lacks.
var ErrUnknownMode = errors.New("unknown transform mode")

// Mode is a text transformation.
type Mode string

const (
	ModeUpper        Mode = "upper"
	ModeLower        Mode = "lower"
	ModeTitle        Mode = "title"
	ModeReverse      Mode = "reverse"
	ModeRemoveSpaces Mode = "remove-spaces"
	ModeAddSpaces    Mode = "add-spaces"
)

// Modes lists the transformations in display order.
func Modes() []Mode {
	return []Mode{ModeUpper, ModeLower, ModeTitle, ModeReverse, ModeRemoveSpaces, ModeAddSpaces}
}

func tagFor(lang locale.Code) language.Tag {
	if lang == locale.LanguageEnglish {
		return language.English
	}
	return language.Korean
}

// Transform applies mode to text using the casing rules of lang.
func Transform(text string, mode Mode, lang locale.Code) (string, error) {
	tag := tagFor(lang)
	switch mode {
	case ModeUpper:
		return cases.Upper(tag).String(text), nil
	case ModeLower:
		return cases.Lower(tag).String(text), nil
	case ModeTitle:
		return cases.Title(tag).String(text), nil
	case ModeReverse:
		runes := []rune(text)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes), nil
	case ModeRemoveSpaces:
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, text), nil
	case ModeAddSpaces:
		var parts []string
		for _, r := range text {
			if !unicode.IsSpace(r) {
				parts = append(parts, string(r))
			}
		}
		return strings.Join(parts, " "), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// TextSample is the initial state of the text transformer.
type TextSample struct {
	Input  string
	Mode   Mode
	Output string
}
