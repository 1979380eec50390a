package game

import (
	"fmt"
	"strconv"
)

// Card is one token of an equivalence group placed on the board.
type Card struct {
	ID      string `json:"id"`
	Group   int    `json:"group"`
	Value   string `json:"value"`
	Matched bool   `json:"matched"`
}

// CardID builds the identifier of the card holding value in the given group.
func CardID(group int, value string) string {
	return strconv.Itoa(group) + "-" + value
}

// Deck is the ordered set of cards of a round, in presentation order.
type Deck []*Card

// Find returns the card with the given id, or nil.
func (d Deck) Find(id string) *Card {
	for _, c := range d {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Cards returns a copy of the cards, safe to hand to other goroutines.
func (d Deck) Cards() []Card {
	cards := make([]Card, len(d))
	for i, c := range d {
		cards[i] = *c
	}
	return cards
}

// Generate draws GroupsPerRound random groups of the difficulty and deals all
// their tokens into a shuffled deck.
//
// totalPairs is the number of groups drawn. A round is complete once that many
// two-card matches have been made, which only clears half of the board: each
// group of four needs two matches to be fully cleared.
func Generate(d Difficulty, rng Rand) (deck Deck, totalPairs int, err error) {
	groups, err := Groups(d)
	if err != nil {
		return nil, 0, fmt.Errorf("generate deck: %w", err)
	}
	Shuffle(rng, groups)
	selected := groups[:min(GroupsPerRound, len(groups))]

	deck = make(Deck, 0, len(selected)*len(EquivalenceGroup{}.Values))
	for _, g := range selected {
		for _, v := range g.Values {
			deck = append(deck, &Card{
				ID:    CardID(g.ID, v),
				Group: g.ID,
				Value: v,
			})
		}
	}
	Shuffle(rng, deck)
	return deck, len(selected), nil
}
