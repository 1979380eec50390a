package game

import (
	"encoding/json"
	"fmt"
)

// Message type for WebSocket communication between client and server.
type MessageType string

const (
	// Client to server.
	MsgTypeNewRound  MessageType = "new_round"  // Client wants a new round, optionally at another difficulty
	MsgTypeSelect    MessageType = "select"     // Client clicked a card
	MsgTypeHint      MessageType = "hint"       // Client asks for the hint
	MsgTypeCloseHint MessageType = "close_hint" // Client closed the hint dialog
	MsgTypePlayAgain MessageType = "play_again" // Client closed the completion dialog

	// Server to client.
	MsgTypeDeck     MessageType = "deck"      // Server sends the cards of a new round
	MsgTypeMark     MessageType = "mark"      // Server adds or removes a visual mark of a card
	MsgTypeScore    MessageType = "score"     // Server sends score and pair counts
	MsgTypeTime     MessageType = "time"      // Server sends the elapsed time
	MsgTypeHintText MessageType = "hint_text" // Server shows or hides the hint dialog
	MsgTypeComplete MessageType = "complete"  // Server shows or hides the completion dialog
	MsgTypeError    MessageType = "error"     // Server sends an error message
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload any) (WsMessage, error) {
	if payload == nil {
		return WsMessage{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return WsMessage{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return WsMessage{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into one of the message types (NewRoundMessage, DeckMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeNewRound:
		target = &NewRoundMessage{}
	case MsgTypeSelect:
		target = &SelectMessage{}
	case MsgTypeHint:
		target = &HintMessage{}
	case MsgTypeCloseHint:
		target = &CloseHintMessage{}
	case MsgTypePlayAgain:
		target = &PlayAgainMessage{}
	case MsgTypeDeck:
		target = &DeckMessage{}
	case MsgTypeMark:
		target = &MarkMessage{}
	case MsgTypeScore:
		target = &ScoreMessage{}
	case MsgTypeTime:
		target = &TimeMessage{}
	case MsgTypeHintText:
		target = &HintTextMessage{}
	case MsgTypeComplete:
		target = &CompleteMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// NewRoundMessage is the payload for MsgTypeNewRound
type NewRoundMessage struct {
	Difficulty Difficulty `json:"difficulty,omitempty"` // Empty keeps the current difficulty
}

// SelectMessage is the payload for MsgTypeSelect
type SelectMessage struct {
	CardID string `json:"card_id"`
}

// HintMessage: empty.
type HintMessage struct{}

// CloseHintMessage: empty.
type CloseHintMessage struct{}

// PlayAgainMessage: empty.
type PlayAgainMessage struct{}

// DeckMessage is the payload for MsgTypeDeck
type DeckMessage struct {
	Difficulty Difficulty `json:"difficulty"`
	Cards      []Card     `json:"cards"` // In presentation order
}

// MarkMessage is the payload for MsgTypeMark
type MarkMessage struct {
	CardID string `json:"card_id"`
	Mark   Mark   `json:"mark"`
	On     bool   `json:"on"` // False removes the mark
}

// ScoreMessage is the payload for MsgTypeScore
type ScoreMessage struct {
	Score        int `json:"score"`
	MatchedPairs int `json:"matched_pairs"`
	TotalPairs   int `json:"total_pairs"`
}

// TimeMessage is the payload for MsgTypeTime
type TimeMessage struct {
	Elapsed string `json:"elapsed"` // MM:SS
}

// HintTextMessage is the payload for MsgTypeHintText
type HintTextMessage struct {
	Text    string `json:"text,omitempty"`
	Visible bool   `json:"visible"`
}

// CompleteMessage is the payload for MsgTypeComplete
type CompleteMessage struct {
	Score   int    `json:"score,omitempty"`
	Elapsed string `json:"elapsed,omitempty"`
	Visible bool   `json:"visible"`
}

// ErrorMessage is the payload for MsgTypeError
type ErrorMessage struct {
	Message string `json:"message"`
}
