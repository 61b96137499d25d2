package hud

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// NoteView is the note overlay the menu opens and closes.
type NoteView interface {
	SetActive(active bool)
	SetText(text string)
}

// ControlLock turns the player's look and movement input on or off.
type ControlLock interface {
	SetControlsEnabled(enabled bool)
}

type Cursor interface {
	SetCursorMode(mode ebiten.CursorModeType)
}

// CursorFunc adapts a function to Cursor.
type CursorFunc func(mode ebiten.CursorModeType)

func (f CursorFunc) SetCursorMode(mode ebiten.CursorModeType) { f(mode) }

// SystemCursor drives the OS cursor through ebiten.
var SystemCursor Cursor = CursorFunc(ebiten.SetCursorMode)

// Menu opens the note overlay and hands the pointer back to the player when
// it closes.
type Menu struct {
	view     NoteView
	controls ControlLock
	cursor   Cursor
	log      *zap.Logger

	noteOpen bool
}

func NewMenu(view NoteView, controls ControlLock, cursor Cursor, log *zap.Logger) *Menu {
	if log == nil {
		log = zap.NewNop()
	}
	return &Menu{view: view, controls: controls, cursor: cursor, log: log}
}

// ShowNote displays text and frees the cursor. A note that is already open
// only has its text replaced.
func (m *Menu) ShowNote(text string) {
	if m.view != nil {
		m.view.SetActive(true)
		m.view.SetText(text)
	}
	if m.controls != nil {
		m.controls.SetControlsEnabled(false)
	}
	if m.cursor != nil {
		m.cursor.SetCursorMode(ebiten.CursorModeVisible)
	}
	if !m.noteOpen {
		m.log.Debug("note opened")
	}
	m.noteOpen = true
}

func (m *Menu) CloseNote() {
	if m.view != nil {
		m.view.SetActive(false)
	}
	if m.controls != nil {
		m.controls.SetControlsEnabled(true)
	}
	if m.cursor != nil {
		m.cursor.SetCursorMode(ebiten.CursorModeCaptured)
	}
	if m.noteOpen {
		m.log.Debug("note closed")
	}
	m.noteOpen = false
}

func (m *Menu) IsNoteOpen() bool {
	return m.noteOpen
}
