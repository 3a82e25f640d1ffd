// Package tools implements the creative tools: color palette, daily keywords,
// unit converter and text transformer.
package tools

import (
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/skilllab/internal/locale"
)

// ErrUnknownTool is returned for ids outside the tool catalog.
var ErrUnknownTool = errors.New("unknown tool")

var sampleText = map[locale.Code]string{
	locale.LanguageKorean:  "스킬 랩에 오신 것을 환영합니다",
	locale.LanguageEnglish: "welcome to skill lab",
}

// State is any tool state.
type State interface {
	ToolID() string
}

func (Palette) ToolID() string    { return "color-palette" }
func (Keywords) ToolID() string   { return "keywords" }
func (Conversion) ToolID() string { return "unit-converter" }
func (TextSample) ToolID() string { return "text-transformer" }

// Toolbox generates fresh tool states.
type Toolbox struct {
	faker *gofakeit.Faker
}

// NewToolbox returns a toolbox; a nil faker seeds a new one.
func NewToolbox(faker *gofakeit.Faker) *Toolbox {
	if faker == nil {
		faker = gofakeit.New(0)
	}
	return &Toolbox{faker: faker}
}

// Generate returns the initial state of tool id in lang.
func (t *Toolbox) Generate(id string, lang locale.Code) (State, error) {
	switch id {
	case "color-palette":
		return GeneratePalette(t.faker), nil
	case "keywords":
		return GenerateKeywords(t.faker, lang), nil
	case "unit-converter":
		return Convert(decimal.NewFromInt(16), Pixel, Point)
	case "text-transformer":
		input := sampleText[lang]
		if input == "" {
			input = sampleText[locale.DefaultLanguage]
		}
		out, err := Transform(input, ModeTitle, lang)
		if err != nil {
			return nil, err
		}
		return TextSample{Input: input, Mode: ModeTitle, Output: out}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, id)
	}
}
