package hud

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/cemetery/common"
)

const (
	noteColumns   = 72
	noteCacheSize = 32
)

// NoteScreen is the ebitenui note reader. It implements NoteView.
type NoteScreen struct {
	ui      *ebitenui.UI
	overlay *widget.Container
	body    *widget.Text
	wrap    *wrapCache
	active  bool
}

// NewNoteScreen builds the overlay hidden. onClose runs when the Close
// button is clicked.
func NewNoteScreen(onClose func()) (*NoteScreen, error) {
	wc, err := newWrapCache(noteCacheSize, noteColumns)
	if err != nil {
		return nil, err
	}

	dimImg := imageui.NewNineSliceColor(color.NRGBA{A: 140})
	paperImg := imageui.NewNineSliceColor(color.NRGBA{R: 0xd8, G: 0xcf, B: 0xb4, A: 0xff})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x2b, B: 0x22, A: 0xff})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x48, B: 0x38, A: 0xff})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	ink := color.NRGBA{R: 0x22, G: 0x1a, B: 0x12, A: 0xff}

	s := &NoteScreen{wrap: wc}

	title := widget.NewText(
		widget.TextOpts.Text("Note", &face, ink),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	s.body = widget.NewText(
		widget.TextOpts.Text("", &face, ink),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
	)
	closeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnPressedImg, Pressed: btnPressedImg}),
		widget.ButtonOpts.Text("Close", &face, &widget.ButtonTextColor{Idle: color.White}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionEnd})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClose != nil {
				onClose()
			}
		}),
	)

	paper := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(paperImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(14),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 20, Left: 32, Right: 32}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	paper.AddChild(title)
	paper.AddChild(s.body)
	paper.AddChild(closeBtn)

	s.overlay = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(dimImg),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	s.overlay.AddChild(paper)
	s.overlay.GetWidget().Visibility = widget.Visibility_Hide

	s.ui = &ebitenui.UI{Container: s.overlay}
	return s, nil
}

func (s *NoteScreen) SetActive(active bool) {
	s.active = active
	if active {
		s.overlay.GetWidget().Visibility = widget.Visibility_Show
	} else {
		s.overlay.GetWidget().Visibility = widget.Visibility_Hide
	}
	s.overlay.RequestRelayout()
}

func (s *NoteScreen) SetText(text string) {
	s.body.Label = strings.Join(s.wrap.lines(text), "\n")
	s.overlay.RequestRelayout()
}

func (s *NoteScreen) Active() bool {
	return s.active
}

func (s *NoteScreen) Update() {
	if s.active {
		s.ui.Update()
	}
}

func (s *NoteScreen) Draw(screen *ebiten.Image) {
	if s.active {
		s.ui.Draw(screen)
	}
}

// wrapCache memoizes word-wrapped note bodies by text.
type wrapCache struct {
	cols  int
	cache *lru.Cache[string, []string]
}

func newWrapCache(size, cols int) (*wrapCache, error) {
	c, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("hud: note wrap cache: %w", err)
	}
	return &wrapCache{cols: cols, cache: c}, nil
}

func (w *wrapCache) lines(text string) []string {
	if lines, ok := w.cache.Get(text); ok {
		return lines
	}
	lines := wrapText(text, w.cols)
	w.cache.Add(text, lines)
	return lines
}

// wrapText breaks text into lines of at most cols runes on word boundaries.
// Explicit newlines are kept; words longer than cols are split.
func wrapText(text string, cols int) []string {
	if cols <= 0 {
		cols = 1
	}
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		var line []rune
		for _, word := range words {
			wr := []rune(word)
			for len(wr) > cols {
				if len(line) > 0 {
					out = append(out, string(line))
					line = line[:0]
				}
				out = append(out, string(wr[:cols]))
				wr = wr[cols:]
			}
			switch {
			case len(line) == 0:
				line = append(line, wr...)
			case len(line)+1+len(wr) <= cols:
				line = append(line, ' ')
				line = append(line, wr...)
			default:
				out = append(out, string(line))
				line = append(line[:0], wr...)
			}
		}
		if len(line) > 0 {
			out = append(out, string(line))
		}
	}
	return out
}
