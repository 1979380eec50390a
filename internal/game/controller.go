package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"k8s.io/klog/v2"
)

var (
	// ErrNoRound is returned by operations that need a round before one was started.
	ErrNoRound = errors.New("no round started")

	// ErrUnknownCard is returned when selecting a card id that is not in the deck.
	ErrUnknownCard = errors.New("unknown card")
)

// Config holds the timings and random source of a Controller.
type Config struct {
	ResolveDelay    time.Duration // Between the second selection and the comparison.
	WrongFlashDelay time.Duration // How long mismatched cards stay marked wrong.
	CompletionDelay time.Duration // Between the last match and the completion report.
	TickInterval    time.Duration // Period of the time display updates.

	// Rand shuffles the decks. Nil uses the process-wide source.
	Rand Rand
}

// DefaultConfig returns the standard game timings.
func DefaultConfig() Config {
	return Config{
		ResolveDelay:    DefaultResolveDelay,
		WrongFlashDelay: DefaultWrongFlashDelay,
		CompletionDelay: DefaultCompletionDelay,
		TickInterval:    DefaultTickInterval,
	}
}

// Controller owns the game: one round at a time, its timer and its delayed callbacks.
//
// All operations, delayed callbacks and timer ticks run under one lock, so each
// handler completes before the next one starts.
type Controller struct {
	cfg     Config
	display Display

	mu         sync.Mutex
	difficulty Difficulty
	state      *GameState
	engine     *MatchEngine
	timer      *Timer
	generation uint64
	pending    map[*time.Timer]struct{}
}

// NewController creates a Controller reporting to display. No round is started.
func NewController(display Display, cfg Config) *Controller {
	return &Controller{
		cfg:        cfg,
		display:    display,
		difficulty: DefaultDifficulty,
		pending:    make(map[*time.Timer]struct{}),
	}
}

// StartNewRound discards the current round, if any, and starts a new one.
// On error the current round is left untouched.
func (c *Controller) StartNewRound(d Difficulty) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startNewRoundLocked(d, nil)
}

// NewRound starts a new round with the current difficulty.
func (c *Controller) NewRound() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startNewRoundLocked(c.difficulty, nil)
}

// ChangeDifficulty starts a new round with difficulty d.
func (c *Controller) ChangeDifficulty(d Difficulty) error {
	return c.StartNewRound(d)
}

// PlayAgain hides the completion panel and starts a new round with the current difficulty.
// If the new round cannot start, the panel stays up.
func (c *Controller) PlayAgain() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startNewRoundLocked(c.difficulty, c.display.HideComplete)
}

// startNewRoundLocked builds the deck for d and installs the new round. beforeRender,
// if set, runs once the deck is built and before the new round is displayed.
func (c *Controller) startNewRoundLocked(d Difficulty, beforeRender func()) error {
	deck, totalPairs, err := Generate(d, c.cfg.Rand)
	if err != nil {
		return fmt.Errorf("start new round: %w", err)
	}
	c.endRoundLocked()
	c.generation++
	c.difficulty = d

	now := time.Now()
	c.state = &GameState{
		Difficulty: d,
		Deck:       deck,
		TotalPairs: totalPairs,
		StartTime:  now,
		Running:    true,
		Generation: c.generation,
	}
	c.engine = newMatchEngine(c.state, c.display, c.cfg, c.after, c.finishLocked)

	if beforeRender != nil {
		beforeRender()
	}
	c.display.RenderDeck(d, deck.Cards())
	c.display.ShowScore(0, 0, totalPairs)
	c.display.ShowTime(FormatElapsed(0))

	generation := c.generation
	c.timer = NewTimer(c.cfg.TickInterval, func(elapsed time.Duration) {
		c.tick(generation, elapsed)
	})
	c.timer.Start(now)
	klog.V(1).Infof("Controller: started round %d, difficulty=%s, %d cards", generation, d, len(deck))
	return nil
}

// SelectCard selects the card with the given id.
//
// Selections the rules do not allow (matched card, card already selected, two cards
// pending, round complete) are ignored and return nil.
func (c *Controller) SelectCard(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return ErrNoRound
	}
	card := c.state.Deck.Find(id)
	if card == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	if c.state.Complete {
		return nil
	}
	if !c.engine.Select(card) {
		klog.V(2).Infof("Controller: ignored selection of %q in phase %s", id, c.engine.Phase())
	}
	return nil
}

// RequestHint shows and returns the hint of the current difficulty.
func (c *Controller) RequestHint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	text := Hint(c.difficulty)
	c.display.ShowHint(text)
	return text
}

// DismissHint hides the hint panel.
func (c *Controller) DismissHint() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display.HideHint()
}

// Difficulty returns the difficulty of the current (or next) round.
func (c *Controller) Difficulty() Difficulty {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.difficulty
}

// Phase returns the selection phase of the current round.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == nil {
		return PhaseEmpty
	}
	return c.engine.Phase()
}

// Snapshot returns a copy of the current round's state.
func (c *Controller) Snapshot() (GameState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return GameState{}, ErrNoRound
	}
	return c.state.Clone(), nil
}

// Close stops the timer and cancels every pending callback.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endRoundLocked()
	c.generation++
}

// endRoundLocked stops the timer and pending callbacks of the current round.
func (c *Controller) endRoundLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.state != nil {
		c.state.Running = false
	}
	for t := range c.pending {
		t.Stop()
	}
	clear(c.pending)
}

// after runs f under the lock after d, if the round that scheduled it is still current.
// It must be called with the lock held.
func (c *Controller) after(d time.Duration, f func()) {
	generation := c.generation
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.pending, t)
		if generation != c.generation {
			klog.V(2).Infof("Controller: dropping callback of stale round %d (current %d)", generation, c.generation)
			return
		}
		f()
	})
	c.pending[t] = struct{}{}
}

func (c *Controller) tick(generation uint64, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation || c.state == nil || !c.state.Running {
		return
	}
	c.display.ShowTime(FormatElapsed(elapsed))
}

// finishLocked reports the end of the round; called by the engine after CompletionDelay.
func (c *Controller) finishLocked() {
	c.timer.Stop()
	c.state.Running = false
	elapsed := FormatElapsed(c.timer.Elapsed())
	klog.V(1).Infof("Controller: round %d complete, score=%d, time=%s", c.state.Generation, c.state.Score, elapsed)
	c.display.ShowComplete(c.state.Score, elapsed)
}
