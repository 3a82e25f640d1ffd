// Package view renders game and tool states into panel markup.
package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/skilllab/internal/games"
	"github.com/skilllab/internal/i18n"
	"github.com/skilllab/internal/locale"
	"github.com/skilllab/internal/tools"
)

const panelTemplates = `
{{define "fps-aim"}}<div class="game-stats">
<div class="stat"><span data-i18n="scoreLabel">{{t "scoreLabel"}}</span> <strong class="stat-value">{{.Score}}</strong></div>
<div class="stat"><span data-i18n="accuracyLabel">{{t "accuracyLabel"}}</span> <strong class="stat-value">{{.Accuracy}}%</strong></div>
<div class="stat"><span data-i18n="timerLabel">{{t "timerLabel"}}</span> <strong class="stat-value">{{.TimeLeft}}s</strong></div>
</div>
<div class="game-area"><div class="target" data-x="{{.Target.X}}" data-y="{{.Target.Y}}"></div></div>
<button class="game-btn" data-action="start" data-i18n="startButton">{{t "startButton"}}</button>{{end}}

{{define "reaction-test"}}<div class="game-stats">
<div class="stat"><span data-i18n="attemptsLabel">{{t "attemptsLabel"}}</span> <strong class="stat-value">{{len .Results}}/{{.Rounds}}</strong></div>
<div class="stat"><span data-i18n="avgReactionLabel">{{t "avgReactionLabel"}}</span> <strong class="stat-value">{{.AverageMillis}}ms</strong></div>
</div>
<div class="game-area reaction-area" data-state="ready"><p data-i18n="reactionStartText">{{t "reactionStartText"}}</p></div>{{end}}

{{define "memory-game"}}<div class="game-stats">
<div class="stat"><span data-i18n="matchesLabel">{{t "matchesLabel"}}</span> <strong class="stat-value">{{.Matched}}/{{.Pairs}}</strong></div>
<div class="stat"><span data-i18n="movesLabel">{{t "movesLabel"}}</span> <strong class="stat-value">{{.Moves}}</strong></div>
</div>
<div class="memory-grid">{{range $i, $card := .Cards}}<div class="memory-card" data-index="{{$i}}" data-symbol="{{$card}}"></div>{{end}}</div>
<button class="game-btn" data-action="new-game" data-i18n="newGameButton">{{t "newGameButton"}}</button>{{end}}

{{define "color-match"}}<p data-i18n="colorInstruction">{{t "colorInstruction"}}</p>
<div class="target-color" data-color="{{.Target}}"></div>
<div class="color-options">{{range .Options}}<button class="color-option" data-color="{{.}}">{{.}}</button>{{end}}</div>
<div class="stat"><span data-i18n="scoreLabel">{{t "scoreLabel"}}</span> <strong class="stat-value">{{.Score}}</strong></div>{{end}}

{{define "color-palette"}}<div class="color-palette">{{range .Colors}}<div class="color-swatch" data-color="{{.}}"><span class="color-code">{{.}}</span></div>{{end}}</div>
<button class="tool-button" data-action="generate" data-i18n="generatePaletteButton">{{t "generatePaletteButton"}}</button>{{end}}

{{define "keywords"}}<div class="keyword-grid" id="keywordGrid">{{range .Words}}<div class="keyword-tag">{{.}}</div>{{end}}</div>
<button class="tool-button" data-action="generate" data-i18n="generateKeywordsButton">{{t "generateKeywordsButton"}}</button>{{end}}

{{define "unit-converter"}}<div class="converter">
<label data-i18n="inputValueLabel">{{t "inputValueLabel"}}</label> <output class="input-value">{{.Value}}{{.From}}</output>
<label data-i18n="resultLabel">{{t "resultLabel"}}</label> <output class="conversion-result">{{.Result}}{{.To}}</output>
</div>{{end}}

{{define "text-transformer"}}<div class="text-transformer">
<label data-i18n="inputTextLabel">{{t "inputTextLabel"}}</label><div class="text-input">{{.Input}}</div>
<div class="transform-modes">{{range modes}}<button class="tool-button" data-mode="{{.}}">{{.}}</button>{{end}}</div>
<label data-i18n="textResultLabel">{{t "textResultLabel"}}</label><div class="text-output" data-mode="{{.Mode}}">{{.Output}}</div>
</div>{{end}}
`

// Renderer turns collaborator states into translated panel markup.
type Renderer struct {
	table *i18n.Table
	tmpl  *template.Template
}

// NewRenderer parses the panel templates. Labels are looked up in table; a nil
// table renders keys.
func NewRenderer(table *i18n.Table) *Renderer {
	funcs := template.FuncMap{
		"t":     func(key string) string { return key },
		"modes": tools.Modes,
	}
	return &Renderer{
		table: table,
		tmpl:  template.Must(template.New("panels").Funcs(funcs).Parse(panelTemplates)),
	}
}

// Render executes the template named after the state's item id.
func (r *Renderer) Render(name string, state any, lang locale.Code) (string, error) {
	tmpl, err := r.tmpl.Clone()
	if err != nil {
		return "", err
	}
	tmpl.Funcs(template.FuncMap{"t": func(key string) string {
		if r.table == nil {
			return key
		}
		return r.table.Translate(lang, key, key)
	}})

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, state); err != nil {
		return "", fmt.Errorf("render panel %s: %w", name, err)
	}
	return buf.String(), nil
}

// GamePanels resets games and renders their panels.
type GamePanels struct {
	engine   *games.Engine
	renderer *Renderer
}

// NewGamePanels wires an engine to a renderer.
func NewGamePanels(engine *games.Engine, renderer *Renderer) *GamePanels {
	return &GamePanels{engine: engine, renderer: renderer}
}

// Reset builds a fresh game state for id and returns its markup.
func (p *GamePanels) Reset(id string, lang locale.Code) (string, error) {
	state, err := p.engine.Reset(id)
	if err != nil {
		return "", err
	}
	return p.renderer.Render(state.GameID(), state, lang)
}

// ToolPanels generates tool states and renders their panels.
type ToolPanels struct {
	toolbox  *tools.Toolbox
	renderer *Renderer
}

// NewToolPanels wires a toolbox to a renderer.
func NewToolPanels(toolbox *tools.Toolbox, renderer *Renderer) *ToolPanels {
	return &ToolPanels{toolbox: toolbox, renderer: renderer}
}

// Reset generates a fresh tool state for id and returns its markup.
func (p *ToolPanels) Reset(id string, lang locale.Code) (string, error) {
	state, err := p.toolbox.Generate(id, lang)
	if err != nil {
		return "", err
	}
	return p.renderer.Render(state.ToolID(), state, lang)
}
