package game

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "00:00"},
		{999 * time.Millisecond, "00:00"},
		{time.Second, "00:01"},
		{61 * time.Second, "01:01"},
		{59*time.Minute + 59*time.Second + 999*time.Millisecond, "59:59"},
		{time.Hour, "60:00"},
		{100*time.Minute + 5*time.Second, "100:05"},
	}
	for _, test := range tests {
		if got := FormatElapsed(test.elapsed); got != test.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", test.elapsed, got, test.want)
		}
	}
}

func TestGameStateClone(t *testing.T) {
	deck, total, err := Generate(Easy, nil)
	if err != nil {
		t.Fatal(err)
	}
	state := &GameState{Difficulty: Easy, Deck: deck, TotalPairs: total, Selected: []*Card{deck[3]}}
	clone := state.Clone()

	clone.Deck[0].Matched = true
	if deck[0].Matched {
		t.Errorf("Clone shares cards with the original deck")
	}
	if len(clone.Selected) != 1 || clone.Selected[0] != clone.Deck[3] {
		t.Errorf("Clone selection should point into the cloned deck")
	}
	if clone.Selected[0] == deck[3] {
		t.Errorf("Clone selection points into the original deck")
	}
}
