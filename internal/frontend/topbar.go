package frontend

import (
	"github.com/janpfeifer/MathMatch/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// TopBar holds the title and the game controls: difficulty, new game and hint.
type TopBar struct {
	app.Compo
}

func (t *TopBar) onDifficultyChange(ctx app.Context, e app.Event) {
	value := ctx.JSSrc().Get("value").String()
	d, err := game.ParseDifficulty(value)
	if err != nil {
		State.Error = err.Error()
		return
	}
	State.SendNewRound(d)
}

func (t *TopBar) onNewGame(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.SendNewRound("")
}

func (t *TopBar) onHint(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.SendHint()
}

func (t *TopBar) Render() app.UI {
	var options []app.UI
	for _, d := range game.Difficulties {
		options = append(options, app.Option().
			Value(string(d)).
			Selected(d == State.Difficulty).
			Text(d.Label()))
	}

	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(app.Strong().Text("Math Match")),
		),
		app.Ul().Body(
			app.Li().Body(
				app.Select().
					ID("difficulty").
					Aria("label", "Difficulty").
					Style("margin-bottom", "0").
					OnChange(t.onDifficultyChange).
					Body(options...),
			),
			app.Li().Body(app.Button().ID("newGame").Text("New Game").OnClick(t.onNewGame)),
			app.Li().Body(app.Button().ID("hint").Class("secondary").Text("Hint").OnClick(t.onHint)),
		),
	)
}
