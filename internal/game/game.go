package game

import "time"

// Version of the game.
// Bumping this number will eventually make clients reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart (the reload
// still only happens after the first page is loaded, so there is a delay).
// This is useful during development.
var Version = "v0.1.0"

// Scoring and deck sizes.
const (
	MatchPoints     = 10 // Added for every successful match.
	MismatchPenalty = 2  // Removed for every failed match, never below zero.
	GroupsPerRound  = 5  // Groups drawn from the six of a difficulty.
)

// Default delays of the animations the presentation layer plays.
const (
	DefaultResolveDelay    = 500 * time.Millisecond
	DefaultWrongFlashDelay = 500 * time.Millisecond
	DefaultCompletionDelay = time.Second
	DefaultTickInterval    = time.Second
)
