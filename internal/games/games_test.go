package games

import (
	"errors"
	"sort"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func TestPercentageAndAverage(t *testing.T) {
	if got := Percentage(1, 3); got != 33 {
		t.Fatalf("Percentage(1,3) = %d", got)
	}
	if got := Percentage(2, 3); got != 67 {
		t.Fatalf("Percentage(2,3) = %d", got)
	}
	if got := Percentage(5, 0); got != 0 {
		t.Fatalf("Percentage with zero total = %d", got)
	}
	if got := Average([]int{200, 250, 301}); got != 250 {
		t.Fatalf("Average = %d", got)
	}
	if got := Average(nil); got != 0 {
		t.Fatalf("Average(nil) = %d", got)
	}
}

func TestShuffleKeepsInput(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := Shuffle(gofakeit.New(5), in)

	if len(out) != len(in) {
		t.Fatalf("length changed: %v", out)
	}
	for i, v := range in {
		if v != i+1 {
			t.Fatalf("input mutated: %v", in)
		}
	}
	sorted := append([]int(nil), out...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != in[i] {
			t.Fatalf("shuffle lost elements: %v", out)
		}
	}
}

func TestEngineReset(t *testing.T) {
	e := NewEngine(gofakeit.New(9))

	state, err := e.Reset("fps-aim")
	if err != nil {
		t.Fatalf("reset fps-aim: %v", err)
	}
	aim := state.(FPSAim)
	if aim.TimeLeft != FPSAimDuration || aim.Score != 0 || aim.Accuracy() != 0 {
		t.Fatalf("unexpected aim state %+v", aim)
	}
	if aim.Target.X < 10 || aim.Target.X > 90 || aim.Target.Y < 10 || aim.Target.Y > 90 {
		t.Fatalf("target off board: %+v", aim.Target)
	}

	state, err = e.Reset("memory-game")
	if err != nil {
		t.Fatalf("reset memory-game: %v", err)
	}
	memory := state.(MemoryGame)
	if memory.Pairs() != MemoryPairs {
		t.Fatalf("expected %d pairs, got %d", MemoryPairs, memory.Pairs())
	}
	counts := map[string]int{}
	for _, c := range memory.Cards {
		counts[c]++
	}
	for symbol, n := range counts {
		if n != 2 {
			t.Fatalf("symbol %s appears %d times", symbol, n)
		}
	}

	state, err = e.Reset("color-match")
	if err != nil {
		t.Fatalf("reset color-match: %v", err)
	}
	match := state.(ColorMatch)
	if len(match.Options) != ColorMatchChoice {
		t.Fatalf("expected %d options, got %v", ColorMatchChoice, match.Options)
	}
	found := false
	for _, o := range match.Options {
		found = found || o == match.Target
	}
	if !found {
		t.Fatalf("target %s missing from options %v", match.Target, match.Options)
	}

	state, err = e.Reset("reaction-test")
	if err != nil {
		t.Fatalf("reset reaction-test: %v", err)
	}
	if rt := state.(ReactionTest); rt.Rounds != ReactionRounds || rt.AverageMillis() != 0 {
		t.Fatalf("unexpected reaction state %+v", rt)
	}

	if _, err := e.Reset("chess"); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("expected ErrUnknownGame, got %v", err)
	}
}
