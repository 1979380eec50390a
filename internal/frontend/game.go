package frontend

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Game is the only page: stats, the board and the hint and completion dialogs.
type Game struct {
	app.Compo

	onUpdate func()
}

func (g *Game) OnAppUpdate(ctx app.Context) {
	klog.Infof("Game component: App update available, not reloading not to interrupt the game...")
}

func (g *Game) OnMount(ctx app.Context) {
	klog.V(1).Infof("Game component: OnMount called")
	g.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	State.Listeners["game"] = g.onUpdate
}

func (g *Game) OnDismount() {
	klog.V(1).Infof("Game component: OnDismount called")
	delete(State.Listeners, "game")
}

func (g *Game) OnNav(ctx app.Context) {
	klog.V(1).Infof("Game component: OnNav called")
	if app.IsServer || State.Conn != nil {
		return
	}
	if err := State.ConnectWS(); err != nil {
		State.Error = fmt.Sprintf("Failed to connect to the server: %v", err)
		klog.Errorf("Game component: Error connecting: %v", err)
	}
}

func (g *Game) onCardClick(cardID string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		State.SendSelect(cardID)
	}
}

// isBackdropClick reports whether the click landed on the dialog itself rather than its content.
func isBackdropClick(ctx app.Context, e app.Event) bool {
	return e.Get("target").Get("tagName").String() == "DIALOG"
}

func (g *Game) onCloseHint(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.SendCloseHint()
}

func (g *Game) onHintBackdrop(ctx app.Context, e app.Event) {
	if isBackdropClick(ctx, e) {
		State.SendCloseHint()
	}
}

func (g *Game) onPlayAgain(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.SendPlayAgain()
}

func (g *Game) onCompleteBackdrop(ctx app.Context, e app.Event) {
	if isBackdropClick(ctx, e) {
		State.SendPlayAgain()
	}
}

func (g *Game) renderStats() app.UI {
	stat := func(label, id, value string) app.UI {
		return app.Div().Class("stat").Body(
			app.Small().Text(label),
			app.Strong().ID(id).Text(value),
		)
	}
	return app.Div().Class("stats").Body(
		stat("Score", "score", fmt.Sprint(State.Score)),
		stat("Matches", "matches", fmt.Sprintf("%d / %d", State.MatchedPairs, State.TotalPairs)),
		stat("Time", "timer", State.Elapsed),
	)
}

func (g *Game) renderBoard() app.UI {
	if len(State.Cards) == 0 {
		return app.Div().Aria("busy", "true").Text("Dealing cards...")
	}
	cards := make([]app.UI, 0, len(State.Cards))
	for i, c := range State.Cards {
		cards = append(cards, app.Div().
			Class(State.CardClass(c.ID)).
			DataSet("id", c.ID).
			DataSet("group", c.Group).
			Style("animation-delay", fmt.Sprintf("%.2fs", float64(i)*0.05)).
			Text(c.Value).
			OnClick(g.onCardClick(c.ID)))
	}
	return app.Div().ID("gameBoard").Class("board").Body(cards...)
}

func (g *Game) renderHint() app.UI {
	if !State.HintVisible {
		return app.Text("")
	}
	return app.Dialog().ID("hintModal").Open(true).OnClick(g.onHintBackdrop).Body(
		app.Article().Body(
			app.Header().Body(
				app.A().Href("#").Aria("label", "Close").Class("close").Rel("prev").OnClick(g.onCloseHint),
				app.Strong().Text("Hint"),
			),
			app.P().ID("hintText").Text(State.HintText),
		),
	)
}

func (g *Game) renderComplete() app.UI {
	if !State.CompleteVisible {
		return app.Text("")
	}
	return app.Dialog().ID("congratulations").Open(true).OnClick(g.onCompleteBackdrop).Body(
		app.Article().Body(
			app.Header().Body(app.H3().Text("Well done!")),
			app.P().Body(
				app.Text("Final score: "),
				app.Strong().ID("finalScore").Text(fmt.Sprint(State.FinalScore)),
			),
			app.P().Body(
				app.Text("Time: "),
				app.Strong().ID("finalTime").Text(State.FinalTime),
			),
			app.Footer().Body(
				app.Button().ID("playAgain").Text("Play Again").OnClick(g.onPlayAgain),
			),
		),
	)
}

func (g *Game) Render() app.UI {
	var errorUI app.UI = app.Text("")
	if State.Error != "" {
		errorUI = app.P().Class("error").Style("color", "red").Text(State.Error)
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		errorUI,
		g.renderStats(),
		g.renderBoard(),
		g.renderHint(),
		g.renderComplete(),
	)
}
