package game

import (
	"fmt"
	"sync"
)

// recordingDisplay records every call, for assertions on what the player would see.
type recordingDisplay struct {
	mu sync.Mutex

	renders  int
	cards    []Card
	marks    map[string]map[Mark]bool
	score    int
	matched  int
	total    int
	times    []string
	hint     string
	hintOpen bool

	completions  int
	completeOpen bool
	finalScore   int
	finalTime    string
	calls        []string
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{marks: make(map[string]map[Mark]bool)}
}

func (d *recordingDisplay) log(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *recordingDisplay) RenderDeck(difficulty Difficulty, cards []Card) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renders++
	d.cards = cards
	d.marks = make(map[string]map[Mark]bool)
	d.log("render %s %d", difficulty, len(cards))
}

func (d *recordingDisplay) AddMark(cardID string, mark Mark) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.marks[cardID] == nil {
		d.marks[cardID] = make(map[Mark]bool)
	}
	d.marks[cardID][mark] = true
	d.log("+%s %s", mark, cardID)
}

func (d *recordingDisplay) RemoveMark(cardID string, mark Mark) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.marks[cardID], mark)
	d.log("-%s %s", mark, cardID)
}

func (d *recordingDisplay) ShowScore(score, matchedPairs, totalPairs int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.score, d.matched, d.total = score, matchedPairs, totalPairs
	d.log("score %d %d/%d", score, matchedPairs, totalPairs)
}

func (d *recordingDisplay) ShowTime(elapsed string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.times = append(d.times, elapsed)
}

func (d *recordingDisplay) ShowHint(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hint, d.hintOpen = text, true
}

func (d *recordingDisplay) HideHint() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hintOpen = false
}

func (d *recordingDisplay) ShowComplete(finalScore int, finalTime string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.completions++
	d.completeOpen = true
	d.finalScore, d.finalTime = finalScore, finalTime
}

func (d *recordingDisplay) HideComplete() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.completeOpen = false
}

func (d *recordingDisplay) hasMark(cardID string, mark Mark) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.marks[cardID][mark]
}

func (d *recordingDisplay) timeUpdates() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.times...)
}

func (d *recordingDisplay) completionCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.completions
}

// pairsIn returns cards of deck grouped by group id, in deck order.
func pairsIn(deck Deck) map[int][]*Card {
	groups := make(map[int][]*Card)
	for _, c := range deck {
		groups[c.Group] = append(groups[c.Group], c)
	}
	return groups
}

// mismatchedPair returns two cards of deck from different groups.
func mismatchedPair(deck Deck) (*Card, *Card) {
	for _, c := range deck[1:] {
		if c.Group != deck[0].Group {
			return deck[0], c
		}
	}
	panic("deck has a single group")
}
