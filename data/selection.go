package data

import (
	"math/rand"
	"sort"
)

const (
	// MainNumbersCount - how many main numbers a ticket holds
	MainNumbersCount = 4
	// MainNumbersMax - main numbers are drawn from 1..MainNumbersMax
	MainNumbersMax = 30
	// StarNumbersCount - how many powerball numbers a ticket holds
	StarNumbersCount = 1
	// StarNumbersMax - powerball numbers are drawn from 1..StarNumbersMax
	StarNumbersMax = 10
	// TicketPriceEGLD - fixed price of one ticket
	TicketPriceEGLD = 0.05
)

// Selection holds the numbers picked for the next ticket. Order of picking is
// preserved; callers sort at the point of use.
type Selection struct {
	Main  []int
	Stars []int
}

// ToggleMain adds n to the main pool if absent and the pool has room,
// removes it if present. Out-of-range values are ignored.
func (s *Selection) ToggleMain(n int) {
	s.Main = togglePool(s.Main, n, MainNumbersCount, MainNumbersMax)
}

// ToggleStar adds n to the powerball pool if absent and the pool has room,
// removes it if present. Out-of-range values are ignored.
func (s *Selection) ToggleStar(n int) {
	s.Stars = togglePool(s.Stars, n, StarNumbersCount, StarNumbersMax)
}

func togglePool(pool []int, n int, capacity int, max int) []int {
	if n < 1 || n > max {
		return pool
	}
	for i, x := range pool {
		if x == n {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	if len(pool) >= capacity {
		return pool
	}

	return append(pool, n)
}

// RandomFill replaces any partial selection with a full uniform draw without
// replacement for both pools.
func (s *Selection) RandomFill() {
	s.Main = pickUnique(MainNumbersMax, MainNumbersCount)
	s.Stars = pickUnique(StarNumbersMax, StarNumbersCount)
}

func pickUnique(max int, count int) []int {
	pool := make([]int, max)
	for i := range pool {
		pool[i] = i + 1
	}
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	return pool[:count]
}

// Complete returns true when both pools are at capacity
func (s *Selection) Complete() bool {
	return len(s.Main) == MainNumbersCount && len(s.Stars) == StarNumbersCount
}

// Clear empties both pools
func (s *Selection) Clear() {
	s.Main = nil
	s.Stars = nil
}

// SortedMain returns the main numbers in ascending order
func (s *Selection) SortedMain() []int {
	return sortedCopy(s.Main)
}

// SortedStars returns the powerball numbers in ascending order
func (s *Selection) SortedStars() []int {
	return sortedCopy(s.Stars)
}

func sortedCopy(numbers []int) []int {
	out := make([]int, len(numbers))
	copy(out, numbers)
	sort.Ints(out)

	return out
}
