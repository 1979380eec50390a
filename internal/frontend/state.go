package frontend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/janpfeifer/MathMatch/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// GlobalClientState mirrors what the server's game controller displays,
// as received over the websocket.
type GlobalClientState struct {
	Error string
	Conn  *websocket.Conn

	// Board
	Difficulty game.Difficulty
	Cards      []game.Card
	Marks      map[string]map[game.Mark]bool

	// Stats
	Score        int
	MatchedPairs int
	TotalPairs   int
	Elapsed      string

	// Dialogs
	HintText        string
	HintVisible     bool
	CompleteVisible bool
	FinalScore      int
	FinalTime       string

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = newClientState()
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

func newClientState() *GlobalClientState {
	return &GlobalClientState{
		Difficulty: game.DefaultDifficulty,
		Marks:      make(map[string]map[game.Mark]bool),
		Elapsed:    game.FormatElapsed(0),
		Listeners:  make(map[string]func()),
	}
}

func (s *GlobalClientState) Notify() {
	klog.V(2).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

// CardClass returns the CSS classes of a card: "card" plus its marks.
func (s *GlobalClientState) CardClass(cardID string) string {
	classes := []string{"card"}
	for _, mark := range []game.Mark{game.MarkSelected, game.MarkMatched, game.MarkWrong} {
		if s.Marks[cardID][mark] {
			classes = append(classes, string(mark))
		}
	}
	return strings.Join(classes, " ")
}

// ConnectWS connects to the server, which starts a round right away.
func (s *GlobalClientState) ConnectWS() error {
	if s.Conn != nil {
		klog.Infof("ConnectWS: Closing existing connection")
		s.Conn.CloseNow()
	}

	u := app.Window().URL()
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	wsURL := fmt.Sprintf("%s://%s/ws", scheme, u.Host)
	klog.Infof("ConnectWS: Connecting to %s", wsURL)

	// We use a context that lasts for the duration of the connection setup.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		klog.Errorf("ConnectWS: Dial failed: %v", err)
		return fmt.Errorf("dial failed: %w", err)
	}
	s.Conn = conn

	klog.Infof("ConnectWS: Connected. Starting read loop.")
	// Start reading loop in background
	go s.readLoop(conn)
	return nil
}

func (s *GlobalClientState) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	klog.Infof("readLoop: started")
	for {
		var msg game.WsMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			klog.Errorf("readLoop: WS read error: %v", err)
			if s.Conn == conn {
				s.Conn = nil
				s.Error = "Lost connection to the server. Reload the page to play again."
				s.Notify()
			}
			return
		}

		klog.V(2).Infof("readLoop: received message type: %s", msg.Type)
		s.handleMessage(msg)
	}
}

func (s *GlobalClientState) handleMessage(msg game.WsMessage) {
	p, err := msg.Parse()
	if err != nil {
		klog.Errorf("handleMessage: Failed to parse %s message: %v", msg.Type, err)
		return
	}

	switch m := p.(type) {
	case *game.DeckMessage:
		klog.Infof("handleMessage: New %s deck with %d cards", m.Difficulty, len(m.Cards))
		s.Difficulty = m.Difficulty
		s.Cards = m.Cards
		s.Marks = make(map[string]map[game.Mark]bool)
		s.Error = ""

	case *game.MarkMessage:
		if m.On {
			if s.Marks[m.CardID] == nil {
				s.Marks[m.CardID] = make(map[game.Mark]bool)
			}
			s.Marks[m.CardID][m.Mark] = true
		} else {
			delete(s.Marks[m.CardID], m.Mark)
		}

	case *game.ScoreMessage:
		s.Score = m.Score
		s.MatchedPairs = m.MatchedPairs
		s.TotalPairs = m.TotalPairs

	case *game.TimeMessage:
		s.Elapsed = m.Elapsed

	case *game.HintTextMessage:
		s.HintVisible = m.Visible
		if m.Visible {
			s.HintText = m.Text
		}

	case *game.CompleteMessage:
		s.CompleteVisible = m.Visible
		if m.Visible {
			s.FinalScore = m.Score
			s.FinalTime = m.Elapsed
		}

	case *game.ErrorMessage:
		klog.Errorf("handleMessage: Server error: %s", m.Message)
		s.Error = m.Message

	default:
		klog.Warningf("handleMessage: Unexpected message type %s", msg.Type)
		return
	}
	s.Notify()
}

func (s *GlobalClientState) send(msgType game.MessageType, payload any) {
	if s.Conn == nil {
		klog.Warningf("send: Not connected, dropping %s", msgType)
		return
	}
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		klog.Errorf("send: Failed to create %s message: %v", msgType, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	if err := wsjson.Write(ctx, s.Conn, msg); err != nil {
		klog.Errorf("send: Failed to send %s message: %v", msgType, err)
	}
}

// SendNewRound asks for a new round; an empty difficulty keeps the current one.
func (s *GlobalClientState) SendNewRound(d game.Difficulty) {
	s.send(game.MsgTypeNewRound, game.NewRoundMessage{Difficulty: d})
}

// SendSelect sends a card click.
func (s *GlobalClientState) SendSelect(cardID string) {
	s.send(game.MsgTypeSelect, game.SelectMessage{CardID: cardID})
}

// SendHint asks for the hint of the current difficulty.
func (s *GlobalClientState) SendHint() {
	s.send(game.MsgTypeHint, nil)
}

// SendCloseHint closes the hint dialog.
func (s *GlobalClientState) SendCloseHint() {
	s.send(game.MsgTypeCloseHint, nil)
}

// SendPlayAgain closes the completion dialog and starts a new round.
func (s *GlobalClientState) SendPlayAgain() {
	s.send(game.MsgTypePlayAgain, nil)
}
