package game

import (
	"time"

	"k8s.io/klog/v2"
)

// Phase of the selection state machine.
type Phase int

const (
	PhaseEmpty       Phase = iota // No card selected.
	PhaseOneSelected              // One card waits for a partner.
	PhaseResolving                // Two cards selected, comparison pending.
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseOneSelected:
		return "one-selected"
	case PhaseResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// scheduleFunc runs f after d, unless the round that scheduled it is gone by then.
type scheduleFunc func(d time.Duration, f func())

// MatchEngine runs the selection and matching rules on a GameState.
// It is not safe for concurrent use: the Controller serializes all calls.
type MatchEngine struct {
	state    *GameState
	display  Display
	cfg      Config
	schedule scheduleFunc

	// onComplete is scheduled CompletionDelay after the last match.
	onComplete func()
}

func newMatchEngine(state *GameState, display Display, cfg Config, schedule scheduleFunc, onComplete func()) *MatchEngine {
	return &MatchEngine{
		state:      state,
		display:    display,
		cfg:        cfg,
		schedule:   schedule,
		onComplete: onComplete,
	}
}

// Phase returns the current phase, derived from the selection size.
func (m *MatchEngine) Phase() Phase {
	switch len(m.state.Selected) {
	case 0:
		return PhaseEmpty
	case 1:
		return PhaseOneSelected
	default:
		return PhaseResolving
	}
}

// Select adds card to the selection. It returns false, and changes nothing, if the
// card is matched, already selected, or two cards are already waiting for resolution.
func (m *MatchEngine) Select(card *Card) bool {
	if card.Matched || m.Phase() == PhaseResolving || m.isSelected(card) {
		return false
	}
	m.state.Selected = append(m.state.Selected, card)
	m.display.AddMark(card.ID, MarkSelected)
	if len(m.state.Selected) == 2 {
		m.schedule(m.cfg.ResolveDelay, m.resolve)
	}
	return true
}

func (m *MatchEngine) isSelected(card *Card) bool {
	for _, c := range m.state.Selected {
		if c.ID == card.ID {
			return true
		}
	}
	return false
}

// resolve compares the two selected cards and always leaves the selection empty.
func (m *MatchEngine) resolve() {
	if len(m.state.Selected) != 2 {
		klog.Warningf("MatchEngine: resolve called with %d selected cards", len(m.state.Selected))
		m.state.Selected = nil
		return
	}
	first, second := m.state.Selected[0], m.state.Selected[1]
	m.state.Selected = nil
	if first.Group == second.Group {
		m.match(first, second)
	} else {
		m.mismatch(first, second)
	}
}

func (m *MatchEngine) match(cards ...*Card) {
	for _, c := range cards {
		c.Matched = true
		m.display.RemoveMark(c.ID, MarkSelected)
		m.display.AddMark(c.ID, MarkMatched)
	}
	m.state.MatchedPairs++
	m.state.Score += MatchPoints
	klog.V(2).Infof("MatchEngine: match in group %d, %s", cards[0].Group, m.state)
	m.display.ShowScore(m.state.Score, m.state.MatchedPairs, m.state.TotalPairs)

	if m.state.MatchedPairs == m.state.TotalPairs {
		m.state.Complete = true
		m.schedule(m.cfg.CompletionDelay, m.onComplete)
	}
}

func (m *MatchEngine) mismatch(cards ...*Card) {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
		m.display.RemoveMark(c.ID, MarkSelected)
		m.display.AddMark(c.ID, MarkWrong)
	}
	m.schedule(m.cfg.WrongFlashDelay, func() {
		for _, id := range ids {
			m.display.RemoveMark(id, MarkWrong)
		}
	})
	m.state.Score = max(0, m.state.Score-MismatchPenalty)
	klog.V(2).Infof("MatchEngine: mismatch %v, %s", ids, m.state)
	m.display.ShowScore(m.state.Score, m.state.MatchedPairs, m.state.TotalPairs)
}
