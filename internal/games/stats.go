package games

import (
	"math"

	"github.com/brianvoe/gofakeit/v6"
)

// Shuffle returns a shuffled copy of items; the input is left untouched.
func Shuffle[T any](faker *gofakeit.Faker, items []T) []T {
	out := append([]T(nil), items...)
	if len(out) > 1 {
		faker.ShuffleAnySlice(out)
	}
	return out
}

// Percentage returns value/total as a rounded percentage, 0 when total is 0.
func Percentage(value, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(value) / float64(total) * 100))
}

// Average returns the rounded mean of numbers, 0 for an empty slice.
func Average(numbers []int) int {
	if len(numbers) == 0 {
		return 0
	}
	sum := 0
	for _, n := range numbers {
		sum += n
	}
	return int(math.Round(float64(sum) / float64(len(numbers))))
}
