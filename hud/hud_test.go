package hud

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNoteView struct {
	active []bool
	texts  []string
}

func (f *fakeNoteView) SetActive(active bool) { f.active = append(f.active, active) }
func (f *fakeNoteView) SetText(text string)   { f.texts = append(f.texts, text) }

type fakeControls struct {
	enabled []bool
}

func (f *fakeControls) SetControlsEnabled(enabled bool) { f.enabled = append(f.enabled, enabled) }

type fakeCursor struct {
	modes []ebiten.CursorModeType
}

func (f *fakeCursor) SetCursorMode(mode ebiten.CursorModeType) { f.modes = append(f.modes, mode) }

func TestNewHidesAllIcons(t *testing.T) {
	mausoleum := &Icon{Visible: true}
	box := &Icon{Visible: true}
	prompt := &Icon{Visible: true}

	New(mausoleum, box, prompt, nil)

	assert.False(t, mausoleum.Visible)
	assert.False(t, box.Visible)
	assert.False(t, prompt.Visible)
}

func TestShowTogglesIcons(t *testing.T) {
	mausoleum, box, prompt := &Icon{}, &Icon{}, &Icon{}
	h := New(mausoleum, box, prompt, nil)

	h.ShowMausoleumKey(true)
	h.ShowPickUpItemPrompt(true)
	assert.True(t, mausoleum.Visible)
	assert.False(t, box.Visible)
	assert.True(t, prompt.Visible)

	h.ShowPickUpItemPrompt(false)
	h.ShowBoxKey(true)
	assert.False(t, prompt.Visible)
	assert.True(t, box.Visible)
}

func TestMissingIconsAreNoops(t *testing.T) {
	h := New(nil, nil, nil, nil)

	assert.NotPanics(t, func() {
		h.ShowMausoleumKey(true)
		h.ShowBoxKey(true)
		h.ShowPickUpItemPrompt(true)
		h.ShowNote("nobody reads this")
	})
}

func TestHUDForwardsNoteToMenu(t *testing.T) {
	view := &fakeNoteView{}
	menu := NewMenu(view, nil, nil, nil)
	h := New(nil, nil, nil, menu)

	h.ShowNote("Beware the crypt")

	assert.True(t, menu.IsNoteOpen())
	assert.Equal(t, []string{"Beware the crypt"}, view.texts)
}

func TestMenuShowAndCloseNote(t *testing.T) {
	view := &fakeNoteView{}
	controls := &fakeControls{}
	cursor := &fakeCursor{}
	m := NewMenu(view, controls, cursor, nil)

	m.ShowNote("first")
	require.True(t, m.IsNoteOpen())
	assert.Equal(t, []bool{true}, view.active)
	assert.Equal(t, []bool{false}, controls.enabled)
	assert.Equal(t, []ebiten.CursorModeType{ebiten.CursorModeVisible}, cursor.modes)

	m.ShowNote("second")
	assert.Equal(t, []string{"first", "second"}, view.texts)
	assert.True(t, m.IsNoteOpen())

	m.CloseNote()
	assert.False(t, m.IsNoteOpen())
	assert.Equal(t, false, view.active[len(view.active)-1])
	assert.Equal(t, true, controls.enabled[len(controls.enabled)-1])
	assert.Equal(t, ebiten.CursorModeCaptured, cursor.modes[len(cursor.modes)-1])
}

func TestMenuWithoutCollaborators(t *testing.T) {
	m := NewMenu(nil, nil, nil, nil)
	assert.NotPanics(t, func() {
		m.ShowNote("text")
		m.CloseNote()
	})
	assert.False(t, m.IsNoteOpen())
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name string
		text string
		cols int
		want []string
	}{
		{"short", "Beware the crypt", 20, []string{"Beware the crypt"}},
		{"breaks_on_words", "Beware the crypt below", 10, []string{"Beware the", "crypt", "below"}},
		{"keeps_newlines", "line one\n\nline two", 20, []string{"line one", "", "line two"}},
		{"splits_long_words", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"collapses_spaces", "a    b", 10, []string{"a b"}},
		{"empty", "", 10, []string{""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := wrapText(tc.text, tc.cols)
			assert.Equal(t, tc.want, got)
			for _, line := range got {
				assert.LessOrEqual(t, len([]rune(line)), tc.cols)
			}
		})
	}
}

func TestWrapCacheReusesLines(t *testing.T) {
	c, err := newWrapCache(2, 10)
	require.NoError(t, err)

	text := strings.Repeat("word ", 5)
	first := c.lines(text)
	second := c.lines(text)

	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0], "cached slice is returned")
	assert.Equal(t, 1, c.cache.Len())
}
