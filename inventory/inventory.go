// Package inventory keeps the items the player owns.
package inventory

import (
	"go.uber.org/zap"

	"github.com/milk9111/cemetery/item"
)

// Notifier is the HUD surface the inventory drives when an item is added.
type Notifier interface {
	ShowMausoleumKey(show bool)
	ShowBoxKey(show bool)
	ShowNote(text string)
}

// Inventory is an insertion-ordered, append-only list of owned item
// definitions. Duplicates are kept.
type Inventory struct {
	items    []*item.Definition
	notifier Notifier
	log      *zap.Logger
}

func New(notifier Notifier, log *zap.Logger) *Inventory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inventory{notifier: notifier, log: log}
}

// Add appends def and fires exactly one HUD effect chosen by its kind.
func (inv *Inventory) Add(def *item.Definition) {
	if inv == nil {
		return
	}
	if def == nil || def.Kind == nil {
		inv.log.Warn("ignoring item without definition")
		return
	}

	inv.items = append(inv.items, def)
	inv.log.Debug("item added",
		zap.String("item", def.ID),
		zap.String("kind", def.Kind.String()),
		zap.Int("count", len(inv.items)),
	)

	if inv.notifier == nil {
		return
	}
	def.Kind.Accept(hudDispatch{inv.notifier})
}

// Items returns a copy of the owned items in insertion order.
func (inv *Inventory) Items() []*item.Definition {
	if inv == nil {
		return nil
	}
	return append([]*item.Definition(nil), inv.items...)
}

func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.items)
}

type hudDispatch struct {
	n Notifier
}

func (d hudDispatch) MausoleumKey()    { d.n.ShowMausoleumKey(true) }
func (d hudDispatch) BoxKey()          { d.n.ShowBoxKey(true) }
func (d hudDispatch) Note(text string) { d.n.ShowNote(text) }
