// Package item defines the static item data that pickable world objects
// grant to the player.
package item

import (
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("item: unknown kind")

// Kind is the closed set of item categories. Dispatch goes through Accept so
// that every KindVisitor must handle every variant.
type Kind interface {
	Accept(v KindVisitor)
	String() string
	isKind()
}

// KindVisitor receives exactly one call from Kind.Accept.
type KindVisitor interface {
	MausoleumKey()
	BoxKey()
	Note(text string)
}

// MausoleumKey opens the mausoleum gate.
type MausoleumKey struct{}

// BoxKey opens the offering box.
type BoxKey struct{}

// Note is a readable page.
type Note struct {
	Text string
}

func (MausoleumKey) Accept(v KindVisitor) { v.MausoleumKey() }
func (MausoleumKey) String() string       { return "mausoleum_key" }
func (MausoleumKey) isKind()              {}

func (BoxKey) Accept(v KindVisitor) { v.BoxKey() }
func (BoxKey) String() string       { return "box_key" }
func (BoxKey) isKind()              {}

func (n Note) Accept(v KindVisitor) { v.Note(n.Text) }
func (Note) String() string         { return "note" }
func (Note) isKind()                {}

// ParseKind builds a Kind from its asset name. text is only kept for notes.
func ParseKind(name, text string) (Kind, error) {
	switch name {
	case "mausoleum_key":
		return MausoleumKey{}, nil
	case "box_key":
		return BoxKey{}, nil
	case "note":
		return Note{Text: text}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Definition is an immutable item record shared by every world instance
// that grants it.
type Definition struct {
	ID   string
	Name string
	Kind Kind
}

// Text returns the note text, or "" for items that are not notes.
func (d *Definition) Text() string {
	if d == nil {
		return ""
	}
	if n, ok := d.Kind.(Note); ok {
		return n.Text
	}
	return ""
}

func (d *Definition) String() string {
	if d == nil {
		return "<nil item>"
	}
	kind := "unknown"
	if d.Kind != nil {
		kind = d.Kind.String()
	}
	return fmt.Sprintf("%s (%s)", d.Name, kind)
}
