package game

import (
	"fmt"
	"strings"
	"time"
)

// Mark is a visual state the presentation applies to a card.
type Mark string

const (
	MarkSelected Mark = "selected"
	MarkMatched  Mark = "matched"
	MarkWrong    Mark = "wrong" // Short flash after a failed match.
)

// Display is implemented by the presentation layer.
//
// The Controller calls it with its lock held: implementations must not call
// back into the Controller synchronously.
type Display interface {
	// RenderDeck replaces all visual cards with the given ones, in order.
	RenderDeck(difficulty Difficulty, cards []Card)
	AddMark(cardID string, mark Mark)
	RemoveMark(cardID string, mark Mark)

	ShowScore(score, matchedPairs, totalPairs int)
	ShowTime(elapsed string)

	ShowHint(text string)
	HideHint()

	ShowComplete(finalScore int, finalTime string)
	HideComplete()
}

// GameState is the state of one round.
type GameState struct {
	Difficulty   Difficulty
	Deck         Deck
	Selected     []*Card // At most 2, never matched cards.
	MatchedPairs int
	TotalPairs   int
	Score        int
	StartTime    time.Time
	Running      bool // Timer is running.
	Complete     bool // MatchedPairs reached TotalPairs; input is ignored.
	Generation   uint64
}

// Clone returns a deep copy of the state. Selected points into the copied deck.
func (s *GameState) Clone() GameState {
	clone := *s
	clone.Deck = make(Deck, len(s.Deck))
	byID := make(map[string]*Card, len(s.Deck))
	for i, c := range s.Deck {
		cc := *c
		clone.Deck[i] = &cc
		byID[c.ID] = &cc
	}
	clone.Selected = make([]*Card, 0, len(s.Selected))
	for _, c := range s.Selected {
		clone.Selected = append(clone.Selected, byID[c.ID])
	}
	return clone
}

func (s *GameState) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Round %d: difficulty=%s, score=%d, pairs=%d/%d, complete=%t, selected=[",
		s.Generation, s.Difficulty, s.Score, s.MatchedPairs, s.TotalPairs, s.Complete)
	for i, c := range s.Selected {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.ID)
	}
	sb.WriteString("]")
	return sb.String()
}

// FormatElapsed formats a duration as MM:SS. Minutes are not wrapped into hours,
// so an hour is shown as "60:00".
func FormatElapsed(d time.Duration) string {
	seconds := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
