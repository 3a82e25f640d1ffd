package view

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilllab/internal/catalog"
	"github.com/skilllab/internal/games"
	"github.com/skilllab/internal/i18n"
	"github.com/skilllab/internal/locale"
	"github.com/skilllab/internal/tools"
)

func TestGamePanelsRenderEveryGame(t *testing.T) {
	renderer := NewRenderer(i18n.MustLoad())
	panels := NewGamePanels(games.NewEngine(gofakeit.New(1)), renderer)

	for _, item := range catalog.Games() {
		out, err := panels.Reset(item.ID, locale.LanguageEnglish)
		require.NoError(t, err, item.ID)
		assert.NotEmpty(t, strings.TrimSpace(out), item.ID)
	}

	out, err := panels.Reset("fps-aim", locale.LanguageKorean)
	require.NoError(t, err)
	assert.Contains(t, out, "30s")
	assert.Contains(t, out, `data-i18n="scoreLabel"`)

	_, err = panels.Reset("chess", locale.LanguageKorean)
	assert.ErrorIs(t, err, games.ErrUnknownGame)
}

func TestToolPanelsTranslateLabels(t *testing.T) {
	table := i18n.MustLoad()
	panels := NewToolPanels(tools.NewToolbox(gofakeit.New(2)), NewRenderer(table))

	for _, item := range catalog.Tools() {
		_, err := panels.Reset(item.ID, locale.LanguageKorean)
		require.NoError(t, err, item.ID)
	}

	out, err := panels.Reset("unit-converter", locale.LanguageEnglish)
	require.NoError(t, err)
	label, _ := table.Lookup(locale.LanguageEnglish, "resultLabel")
	assert.Contains(t, out, label)
	assert.Contains(t, out, "12pt")

	out, err = panels.Reset("color-palette", locale.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, tools.PaletteSize, strings.Count(out, `class="color-swatch"`))
}

func TestRendererWithoutTable(t *testing.T) {
	r := NewRenderer(nil)
	out, err := r.Render("keywords", tools.Keywords{Words: []string{"<b>sea</b>"}}, locale.LanguageEnglish)
	require.NoError(t, err)
	assert.Contains(t, out, "generateKeywordsButton")
	assert.Contains(t, out, "&lt;b&gt;sea&lt;/b&gt;")
}
