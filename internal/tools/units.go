package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownUnit is returned for units outside px, pt, in, cm and mm.
var ErrUnknownUnit = errors.New("unknown unit")

// Unit is a CSS length unit.
type Unit string

const (
	Pixel      Unit = "px"
	Point      Unit = "pt"
	Inch       Unit = "in"
	Centimeter Unit = "cm"
	Millimeter Unit = "mm"
)

// DPI is the CSS reference resolution.
const DPI = 96

// ConversionPlaces is the rounding precision of converted values.
const ConversionPlaces = 4

var pixelsPer = map[Unit]decimal.Decimal{
	Pixel:      decimal.NewFromInt(1),
	Point:      decimal.NewFromInt(DPI).Div(decimal.NewFromInt(72)),
	Inch:       decimal.NewFromInt(DPI),
	Centimeter: decimal.NewFromInt(DPI).Div(decimal.RequireFromString("2.54")),
	Millimeter: decimal.NewFromInt(DPI).Div(decimal.RequireFromString("25.4")),
}

// Units lists the supported units in display order.
func Units() []Unit {
	return []Unit{Pixel, Point, Inch, Centimeter, Millimeter}
}

// ParseUnit normalises a unit name.
func ParseUnit(raw string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := pixelsPer[u]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, raw)
	}
	return u, nil
}

// Conversion is one unit-converter result.
type Conversion struct {
	Value  decimal.Decimal
	From   Unit
	Result decimal.Decimal
	To     Unit
}

// String renders the conversion as "16px = 12pt".
func (c Conversion) String() string {
	return c.Value.String() + string(c.From) + " = " + c.Result.String() + string(c.To)
}

// Convert converts value between units through pixels.
func Convert(value decimal.Decimal, from, to Unit) (Conversion, error) {
	fromPx, ok := pixelsPer[from]
	if !ok {
		return Conversion{}, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	toPx, ok := pixelsPer[to]
	if !ok {
		return Conversion{}, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	result := value.Mul(fromPx).DivRound(toPx, ConversionPlaces+4).Round(ConversionPlaces)
	return Conversion{Value: value, From: from, Result: result, To: to}, nil
}

// ConvertString parses value and unit names, then converts.
func ConvertString(value, from, to string) (Conversion, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Conversion{}, fmt.Errorf("parse value: %w", err)
	}
	fromUnit, err := ParseUnit(from)
	if err != nil {
		return Conversion{}, err
	}
	toUnit, err := ParseUnit(to)
	if err != nil {
		return Conversion{}, err
	}
	return Convert(v, fromUnit, toUnit)
}
