package game

import (
	"errors"
	"fmt"
)

// ErrUnknownDifficulty is returned for difficulty keys outside Easy, Medium and Hard.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects the table of equivalence groups used in a round.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DefaultDifficulty is used before the player picks one.
const DefaultDifficulty = Easy

// Difficulties lists all difficulties in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty converts a menu value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := groupTables[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

// Label is the name shown in the difficulty menu.
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return string(d)
	}
}

// EquivalenceGroup holds four representations of the same number:
// fraction, decimal, percentage and ratio, in that order.
type EquivalenceGroup struct {
	ID     int
	Values [4]string
}

var groupTables = map[Difficulty][]EquivalenceGroup{
	Easy: {
		{ID: 1, Values: [4]string{"1/2", "0.5", "50%", "50/100"}},
		{ID: 2, Values: [4]string{"1/4", "0.25", "25%", "25/100"}},
		{ID: 3, Values: [4]string{"3/4", "0.75", "75%", "75/100"}},
		{ID: 4, Values: [4]string{"1/5", "0.2", "20%", "20/100"}},
		{ID: 5, Values: [4]string{"2/5", "0.4", "40%", "40/100"}},
		{ID: 6, Values: [4]string{"1/10", "0.1", "10%", "10/100"}},
	},
	Medium: {
		{ID: 1, Values: [4]string{"3/8", "0.375", "37.5%", "3:8"}},
		{ID: 2, Values: [4]string{"5/8", "0.625", "62.5%", "5:8"}},
		{ID: 3, Values: [4]string{"2/3", "0.667", "66.7%", "2:3"}},
		{ID: 4, Values: [4]string{"1/3", "0.333", "33.3%", "1:3"}},
		{ID: 5, Values: [4]string{"7/10", "0.7", "70%", "7:10"}},
		{ID: 6, Values: [4]string{"3/5", "0.6", "60%", "3:5"}},
	},
	Hard: {
		{ID: 1, Values: [4]string{"5/6", "0.833", "83.3%", "5:6"}},
		{ID: 2, Values: [4]string{"7/8", "0.875", "87.5%", "7:8"}},
		{ID: 3, Values: [4]string{"11/20", "0.55", "55%", "11:20"}},
		{ID: 4, Values: [4]string{"13/25", "0.52", "52%", "13:25"}},
		{ID: 5, Values: [4]string{"17/50", "0.34", "34%", "17:50"}},
		{ID: 6, Values: [4]string{"9/16", "0.5625", "56.25%", "9:16"}},
	},
}

// Groups returns a copy of the equivalence groups of the given difficulty.
func Groups(d Difficulty) ([]EquivalenceGroup, error) {
	table, ok := groupTables[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	groups := make([]EquivalenceGroup, len(table))
	copy(groups, table)
	return groups, nil
}

var hints = map[Difficulty]string{
	Easy:   "Hint: look for equal fractions, decimals and percentages. For example: 1/2 = 0.5 = 50%",
	Medium: "Hint: pay attention to how ratios are written. For example: 3/8 = 0.375 = 37.5% = 3:8",
	Hard:   "Hint: carefully work out the decimal and percentage forms of the harder fractions. Watch the rounding!",
}

// Hint returns the hint text of a difficulty, or "" if it is unknown.
func Hint(d Difficulty) string {
	return hints[d]
}
