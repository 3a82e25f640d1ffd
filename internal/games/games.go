// Package games builds the initial state of each mini game.
package games

import (
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/skilllab/internal/tools"
)

// ErrUnknownGame is returned for ids outside the game catalog.
var ErrUnknownGame = errors.New("unknown game")

const (
	FPSAimDuration   = 30
	ReactionRounds   = 5
	MemoryPairs      = 8
	ColorMatchChoice = 4
)

var memorySymbols = []string{"🍎", "🚀", "🎧", "🌙", "⚽", "🎲", "🐱", "🌵", "🎈", "🧩"}

// Target is a point on the aim board in percent of its size.
type Target struct {
	X int
	Y int
}

// FPSAim is a fresh aim-training round.
type FPSAim struct {
	Score    int
	Hits     int
	Shots    int
	TimeLeft int
	Target   Target
}

// Accuracy is hits over shots as a percentage.
func (g FPSAim) Accuracy() int {
	return Percentage(g.Hits, g.Shots)
}

// ReactionTest is a fresh reaction-time session.
type ReactionTest struct {
	Rounds  int
	Results []int
}

// AverageMillis is the mean of recorded reaction times.
func (g ReactionTest) AverageMillis() int {
	return Average(g.Results)
}

// MemoryGame is a shuffled deck of symbol pairs.
type MemoryGame struct {
	Cards   []string
	Moves   int
	Matched int
}

// Pairs is the number of pairs in the deck.
func (g MemoryGame) Pairs() int {
	return len(g.Cards) / 2
}

// ColorMatch asks the player to pick Target among Options.
type ColorMatch struct {
	Target  string
	Options []string
	Score   int
}

// State is any game state.
type State interface {
	GameID() string
}

func (FPSAim) GameID() string       { return "fps-aim" }
func (ReactionTest) GameID() string { return "reaction-test" }
func (MemoryGame) GameID() string   { return "memory-game" }
func (ColorMatch) GameID() string   { return "color-match" }

// Engine creates game states from a random source.
type Engine struct {
	faker *gofakeit.Faker
}

// NewEngine returns an engine; a nil faker seeds a new one.
func NewEngine(faker *gofakeit.Faker) *Engine {
	if faker == nil {
		faker = gofakeit.New(0)
	}
	return &Engine{faker: faker}
}

// Reset returns the initial state of the game id.
func (e *Engine) Reset(id string) (State, error) {
	switch id {
	case "fps-aim":
		return e.fpsAim(), nil
	case "reaction-test":
		return ReactionTest{Rounds: ReactionRounds}, nil
	case "memory-game":
		return e.memory(), nil
	case "color-match":
		return e.colorMatch(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}
}

func (e *Engine) fpsAim() FPSAim {
	return FPSAim{
		TimeLeft: FPSAimDuration,
		Target: Target{
			X: e.faker.Number(10, 90),
			Y: e.faker.Number(10, 90),
		},
	}
}

func (e *Engine) memory() MemoryGame {
	symbols := Shuffle(e.faker, memorySymbols)[:MemoryPairs]
	deck := make([]string, 0, MemoryPairs*2)
	deck = append(deck, symbols...)
	deck = append(deck, symbols...)
	return MemoryGame{Cards: Shuffle(e.faker, deck)}
}

func (e *Engine) colorMatch() ColorMatch {
	hues := Shuffle(e.faker, []int{0, 30, 60, 120, 180, 210, 270, 300, 330})[:ColorMatchChoice]
	options := make([]string, 0, ColorMatchChoice)
	for _, h := range hues {
		options = append(options, tools.HSLToHex(float64(h), 75, 55))
	}
	return ColorMatch{
		Target:  options[e.faker.Number(0, len(options)-1)],
		Options: options,
	}
}
