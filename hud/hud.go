// Package hud draws the in-game overlay: key icons, the pickup prompt and
// the note reader.
package hud

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Icon is a HUD element toggled on and off by gameplay.
type Icon struct {
	Image   *ebiten.Image
	Label   string
	X, Y    float64
	Visible bool
}

func (i *Icon) setVisible(v bool) {
	if i != nil {
		i.Visible = v
	}
}

func (i *Icon) draw(screen *ebiten.Image) {
	if i == nil || !i.Visible {
		return
	}
	labelX := i.X
	if i.Image != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(i.X, i.Y)
		screen.DrawImage(i.Image, op)
		labelX += float64(i.Image.Bounds().Dx()) + 6
	}
	if i.Label != "" {
		ebitenutil.DebugPrintAt(screen, i.Label, int(labelX), int(i.Y))
	}
}

// NoteOpener displays a note's text.
type NoteOpener interface {
	ShowNote(text string)
}

// HUD owns the key icons and the pickup prompt. Missing icons are tolerated.
type HUD struct {
	mausoleumKey *Icon
	boxKey       *Icon
	pickUpPrompt *Icon
	notes        NoteOpener
}

// New hides every icon before returning.
func New(mausoleumKey, boxKey, pickUpPrompt *Icon, notes NoteOpener) *HUD {
	h := &HUD{
		mausoleumKey: mausoleumKey,
		boxKey:       boxKey,
		pickUpPrompt: pickUpPrompt,
		notes:        notes,
	}
	h.ShowMausoleumKey(false)
	h.ShowBoxKey(false)
	h.ShowPickUpItemPrompt(false)
	return h
}

func (h *HUD) ShowMausoleumKey(show bool) {
	h.mausoleumKey.setVisible(show)
}

func (h *HUD) ShowBoxKey(show bool) {
	h.boxKey.setVisible(show)
}

func (h *HUD) ShowPickUpItemPrompt(show bool) {
	h.pickUpPrompt.setVisible(show)
}

// ShowNote forwards to the menu layer.
func (h *HUD) ShowNote(text string) {
	if h.notes != nil {
		h.notes.ShowNote(text)
	}
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || screen == nil {
		return
	}
	h.mausoleumKey.draw(screen)
	h.boxKey.draw(screen)
	h.pickUpPrompt.draw(screen)
}
