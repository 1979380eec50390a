package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/janpfeifer/MathMatch/internal/game"
	"k8s.io/klog/v2"
)

// outboxSize is the number of display messages queued for a slow client
// before the controller blocks.
const outboxSize = 256

const writeTimeout = 2 * time.Second

// Session is one browser connection. It owns a game.Controller and implements
// game.Display by streaming the display updates to the browser.
type Session struct {
	ID   string
	conn *websocket.Conn
	ctrl *game.Controller

	outbox    chan game.WsMessage
	done      chan struct{}
	closeOnce sync.Once
}

var _ game.Display = (*Session)(nil)

// NewSession creates a session over conn. The game starts on Run.
func NewSession(conn *websocket.Conn, cfg game.Config) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		conn:   conn,
		outbox: make(chan game.WsMessage, outboxSize),
		done:   make(chan struct{}),
	}
	s.ctrl = game.NewController(s, cfg)
	return s
}

// Run starts a round at the default difficulty and serves the connection until
// it is closed or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	defer s.Close()
	go s.writeLoop(ctx)

	if err := s.ctrl.StartNewRound(game.DefaultDifficulty); err != nil {
		return fmt.Errorf("session %s: %w", s.ID, err)
	}
	return s.readLoop(ctx)
}

// Close ends the session: stops the game clock and closes the connection.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		klog.V(1).Infof("Session %s: closing", s.ID)
		// Unblock display sends before waiting for the controller lock.
		close(s.done)
		s.ctrl.Close()
		s.conn.Close(websocket.StatusNormalClosure, "")
	})
}

func (s *Session) readLoop(ctx context.Context) error {
	for {
		var msg game.WsMessage
		err := wsjson.Read(ctx, s.conn, &msg)
		if err != nil {
			if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("session %s: read: %w", s.ID, err)
		}
		if err := s.handleMessage(msg); err != nil {
			klog.Warningf("Session %s: %v", s.ID, err)
			s.send(game.MsgTypeError, game.ErrorMessage{Message: err.Error()})
		}
	}
}

func (s *Session) handleMessage(msg game.WsMessage) error {
	p, err := msg.Parse()
	if err != nil {
		return fmt.Errorf("failed to parse %q message: %w", msg.Type, err)
	}
	klog.V(2).Infof("Session %s: received %s", s.ID, msg.Type)

	switch m := p.(type) {
	case *game.NewRoundMessage:
		if m.Difficulty == "" {
			return s.ctrl.NewRound()
		}
		d, err := game.ParseDifficulty(string(m.Difficulty))
		if err != nil {
			return err
		}
		return s.ctrl.ChangeDifficulty(d)
	case *game.SelectMessage:
		return s.ctrl.SelectCard(m.CardID)
	case *game.HintMessage:
		s.ctrl.RequestHint()
	case *game.CloseHintMessage:
		s.ctrl.DismissHint()
	case *game.PlayAgainMessage:
		return s.ctrl.PlayAgain()
	default:
		return fmt.Errorf("unexpected message type from client: %s", msg.Type)
	}
	return nil
}

func (s *Session) writeLoop(ctx context.Context) {
	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case msg := <-s.outbox:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, s.conn, msg)
			cancel()
			if err != nil {
				klog.Errorf("Session %s: failed to write %s: %v", s.ID, msg.Type, err)
				s.conn.CloseNow()
				return
			}
		}
	}
}

// send queues a message for the browser. It drops the message if the session is closed.
func (s *Session) send(msgType game.MessageType, payload any) {
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		klog.Errorf("Session %s: failed to create %s message: %v", s.ID, msgType, err)
		return
	}
	select {
	case s.outbox <- msg:
	case <-s.done:
	}
}

// Display implementation.

func (s *Session) RenderDeck(difficulty game.Difficulty, cards []game.Card) {
	s.send(game.MsgTypeDeck, game.DeckMessage{Difficulty: difficulty, Cards: cards})
}

func (s *Session) AddMark(cardID string, mark game.Mark) {
	s.send(game.MsgTypeMark, game.MarkMessage{CardID: cardID, Mark: mark, On: true})
}

func (s *Session) RemoveMark(cardID string, mark game.Mark) {
	s.send(game.MsgTypeMark, game.MarkMessage{CardID: cardID, Mark: mark, On: false})
}

func (s *Session) ShowScore(score, matchedPairs, totalPairs int) {
	s.send(game.MsgTypeScore, game.ScoreMessage{Score: score, MatchedPairs: matchedPairs, TotalPairs: totalPairs})
}

func (s *Session) ShowTime(elapsed string) {
	s.send(game.MsgTypeTime, game.TimeMessage{Elapsed: elapsed})
}

func (s *Session) ShowHint(text string) {
	s.send(game.MsgTypeHintText, game.HintTextMessage{Text: text, Visible: true})
}

func (s *Session) HideHint() {
	s.send(game.MsgTypeHintText, game.HintTextMessage{})
}

func (s *Session) ShowComplete(finalScore int, finalTime string) {
	s.send(game.MsgTypeComplete, game.CompleteMessage{Score: finalScore, Elapsed: finalTime, Visible: true})
}

func (s *Session) HideComplete() {
	s.send(game.MsgTypeComplete, game.CompleteMessage{})
}
