package frontend

import (
	"testing"

	"github.com/janpfeifer/MathMatch/internal/game"
)

func mustMessage(t *testing.T, msgType game.MessageType, payload any) game.WsMessage {
	t.Helper()
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		t.Fatalf("Failed to create %s message: %v", msgType, err)
	}
	return msg
}

func TestHandleMessage(t *testing.T) {
	s := newClientState()
	notified := 0
	s.Listeners["test"] = func() { notified++ }

	cards := []game.Card{
		{ID: "1-1/2", Group: 1, Value: "1/2"},
		{ID: "1-50%", Group: 1, Value: "50%"},
	}
	s.handleMessage(mustMessage(t, game.MsgTypeDeck, game.DeckMessage{Difficulty: game.Medium, Cards: cards}))
	if s.Difficulty != game.Medium || len(s.Cards) != 2 {
		t.Errorf("Deck not applied: %s, %d cards", s.Difficulty, len(s.Cards))
	}

	s.handleMessage(mustMessage(t, game.MsgTypeMark, game.MarkMessage{CardID: "1-1/2", Mark: game.MarkSelected, On: true}))
	if got := s.CardClass("1-1/2"); got != "card selected" {
		t.Errorf("Expected selected card, got class %q", got)
	}
	s.handleMessage(mustMessage(t, game.MsgTypeMark, game.MarkMessage{CardID: "1-1/2", Mark: game.MarkMatched, On: true}))
	s.handleMessage(mustMessage(t, game.MsgTypeMark, game.MarkMessage{CardID: "1-1/2", Mark: game.MarkSelected, On: false}))
	if got := s.CardClass("1-1/2"); got != "card matched" {
		t.Errorf("Expected matched card, got class %q", got)
	}
	if got := s.CardClass("1-50%"); got != "card" {
		t.Errorf("Expected unmarked card, got class %q", got)
	}

	s.handleMessage(mustMessage(t, game.MsgTypeScore, game.ScoreMessage{Score: 10, MatchedPairs: 1, TotalPairs: 5}))
	s.handleMessage(mustMessage(t, game.MsgTypeTime, game.TimeMessage{Elapsed: "01:05"}))
	if s.Score != 10 || s.MatchedPairs != 1 || s.TotalPairs != 5 || s.Elapsed != "01:05" {
		t.Errorf("Stats not applied: %+v", s)
	}

	s.handleMessage(mustMessage(t, game.MsgTypeHintText, game.HintTextMessage{Text: "look closer", Visible: true}))
	if !s.HintVisible || s.HintText != "look closer" {
		t.Errorf("Hint not shown: %q %v", s.HintText, s.HintVisible)
	}
	s.handleMessage(mustMessage(t, game.MsgTypeHintText, game.HintTextMessage{}))
	if s.HintVisible {
		t.Errorf("Expected the hint to be hidden")
	}

	s.handleMessage(mustMessage(t, game.MsgTypeComplete, game.CompleteMessage{Score: 50, Elapsed: "00:42", Visible: true}))
	if !s.CompleteVisible || s.FinalScore != 50 || s.FinalTime != "00:42" {
		t.Errorf("Completion not shown: %+v", s)
	}

	s.handleMessage(mustMessage(t, game.MsgTypeError, game.ErrorMessage{Message: "boom"}))
	if s.Error != "boom" {
		t.Errorf("Expected error to be kept, got %q", s.Error)
	}

	// A new deck clears marks and errors.
	s.handleMessage(mustMessage(t, game.MsgTypeDeck, game.DeckMessage{Difficulty: game.Easy, Cards: cards}))
	if s.Error != "" || s.CardClass("1-1/2") != "card" {
		t.Errorf("New deck did not reset the board: error=%q class=%q", s.Error, s.CardClass("1-1/2"))
	}

	if notified != 11 {
		t.Errorf("Expected 11 notifications, got %d", notified)
	}

	// Client messages and unknown types are ignored.
	s.handleMessage(mustMessage(t, game.MsgTypeSelect, game.SelectMessage{CardID: "1-1/2"}))
	s.handleMessage(game.WsMessage{Type: "bogus"})
	if notified != 11 {
		t.Errorf("Unexpected notification, got %d", notified)
	}
}

func TestSendWithoutConnection(t *testing.T) {
	s := newClientState()
	// Must not panic.
	s.SendSelect("1-1/2")
	s.SendNewRound(game.Hard)
	s.SendHint()
	s.SendCloseHint()
	s.SendPlayAgain()
}
