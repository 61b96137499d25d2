package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/cemetery/common"
	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
	"github.com/milk9111/cemetery/levels"
)

const (
	defaultFOV     = 70.0
	maxRenderPitch = 60.0
	nearPlane      = 0.05
	fogDistance    = 14.0
	minShade       = 0.12
	sideShade      = 0.8
	columnWidth    = 2
	crosshairSize  = 6
)

var (
	skyColor    = color.RGBA{R: 0x0b, G: 0x0d, B: 0x1a, A: 0xff}
	groundColor = colornames.Darkolivegreen
	wallColor   = colornames.Slategray
	lintelColor = colornames.Dimgray
	tombColor   = colornames.Darkgray
)

// spanHit is one solid cell crossed by a column ray.
type spanHit struct {
	cell  levels.Cell
	enter float64
	exit  float64
	side  int
}

// view is the camera for one frame.
type view struct {
	x, z    float64
	eye     float64
	forward common.Vec3
	right   common.Vec3
	plane   float64
	focal   float64
	horizon float64
	width   float64
	height  float64
}

// RenderSystem draws the level as vertical spans with a per-column grid
// raycast, then the billboards and a crosshair.
type RenderSystem struct {
	zbuf []float64
	hits []spanHit
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())
	if sw <= 0 || sh <= 0 {
		return
	}

	levelEntity, ok := ecs.First(w, component.LevelGeometryComponent.Kind())
	if !ok {
		return
	}
	geo, _ := ecs.Get(w, levelEntity, component.LevelGeometryComponent.Kind())
	if geo == nil || geo.Grid == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	rig, ok := ecs.Get(w, player, component.CameraRigComponent.Kind())
	if !ok {
		rig = &component.CameraRig{EyeHeight: 1.6, FOV: defaultFOV}
	}

	v := newView(t, rig, sw, sh)

	vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(common.Clamp(v.horizon, 0, sh)), skyColor, false)
	if v.horizon < sh {
		top := common.Clamp(v.horizon, 0, sh)
		vector.DrawFilledRect(screen, 0, float32(top), float32(sw), float32(sh-top), groundColor, false)
	}

	columns := int(math.Ceil(sw / columnWidth))
	if cap(r.zbuf) < columns {
		r.zbuf = make([]float64, columns)
	}
	r.zbuf = r.zbuf[:columns]

	for col := 0; col < columns; col++ {
		cx := 2*(float64(col)+0.5)/float64(columns) - 1
		rdx := v.forward.X + v.right.X*cx*v.plane
		rdz := v.forward.Z + v.right.Z*cx*v.plane

		r.hits = castColumn(geo.Grid, v.x, v.z, rdx, rdz, r.hits[:0])
		r.zbuf[col] = math.Inf(1)
		if n := len(r.hits); n > 0 {
			r.zbuf[col] = r.hits[n-1].enter
		}

		x := float32(col * columnWidth)
		for i := len(r.hits) - 1; i >= 0; i-- {
			drawSpan(screen, geo.Grid, &v, r.hits[i], x)
		}
	}

	r.drawBillboards(w, screen, &v)
	drawCrosshair(screen, sw, sh)
}

func newView(t *component.Transform, rig *component.CameraRig, sw, sh float64) view {
	fov := rig.FOV
	if fov <= 0 {
		fov = defaultFOV
	}
	scaleY := t.ScaleY
	if scaleY == 0 {
		scaleY = 1
	}
	plane := math.Tan(fov * math.Pi / 360)
	focal := (sw / 2) / plane
	pitch := common.Clamp(rig.Pitch, -maxRenderPitch, maxRenderPitch)

	return view{
		x:       t.X,
		z:       t.Z,
		eye:     t.Y + rig.EyeHeight*scaleY,
		forward: common.Forward(t.Yaw),
		right:   common.Right(t.Yaw),
		plane:   plane,
		focal:   focal,
		horizon: horizonY(sh, focal, pitch),
		width:   sw,
		height:  sh,
	}
}

// horizonY is the screen row of eye level. Positive pitch looks down and
// moves it up the screen.
func horizonY(sh, focal, pitchDeg float64) float64 {
	return sh/2 - math.Tan(pitchDeg*math.Pi/180)*focal
}

// screenY projects a world height at a perpendicular distance.
func (v *view) screenY(height, dist float64) float64 {
	return v.horizon - (height-v.eye)*v.focal/dist
}

// castColumn walks the grid from px,pz along rd and appends every solid cell
// it crosses, nearest first, ending with the first full wall. Distances are
// perpendicular to the camera plane when rd has a unit forward component.
func castColumn(g *levels.Grid, px, pz, rdx, rdz float64, hits []spanHit) []spanHit {
	mapX := int(math.Floor(px / levels.CellSize))
	mapZ := int(math.Floor(pz / levels.CellSize))

	deltaX, deltaZ := math.Inf(1), math.Inf(1)
	if rdx != 0 {
		deltaX = math.Abs(levels.CellSize / rdx)
	}
	if rdz != 0 {
		deltaZ = math.Abs(levels.CellSize / rdz)
	}

	stepX, stepZ := 1, 1
	sideX, sideZ := math.Inf(1), math.Inf(1)
	if rdx < 0 {
		stepX = -1
		sideX = (px/levels.CellSize - float64(mapX)) * deltaX
	} else if rdx > 0 {
		sideX = (float64(mapX) + 1 - px/levels.CellSize) * deltaX
	}
	if rdz < 0 {
		stepZ = -1
		sideZ = (pz/levels.CellSize - float64(mapZ)) * deltaZ
	} else if rdz > 0 {
		sideZ = (float64(mapZ) + 1 - pz/levels.CellSize) * deltaZ
	}

	if cell := g.At(mapX, mapZ); cell == levels.CellLintel || cell == levels.CellTomb {
		hits = append(hits, spanHit{cell: cell, enter: nearPlane, exit: math.Min(sideX, sideZ)})
	}

	maxSteps := g.Width + g.Depth + 2
	for i := 0; i < maxSteps; i++ {
		var enter float64
		side := 0
		if sideX < sideZ {
			enter = sideX
			sideX += deltaX
			mapX += stepX
		} else {
			enter = sideZ
			sideZ += deltaZ
			mapZ += stepZ
			side = 1
		}

		cell := g.At(mapX, mapZ)
		if _, _, solid := g.Span(cell); !solid {
			continue
		}
		hits = append(hits, spanHit{cell: cell, enter: math.Max(enter, nearPlane), exit: math.Min(sideX, sideZ), side: side})
		if cell == levels.CellWall {
			break
		}
	}
	return hits
}

func drawSpan(screen *ebiten.Image, g *levels.Grid, v *view, h spanHit, x float32) {
	lo, hi, ok := g.Span(h.cell)
	if !ok {
		return
	}

	base := wallColor
	switch h.cell {
	case levels.CellLintel:
		base = lintelColor
	case levels.CellTomb:
		base = tombColor
	}

	// Top of a low block or underside of a lintel, seen across the cell.
	if h.cell != levels.CellWall {
		if v.eye > hi {
			fillColumn(screen, v, x, v.screenY(hi, h.exit), v.screenY(hi, h.enter), shade(base, h.exit, 1.1))
		}
		if v.eye < lo {
			fillColumn(screen, v, x, v.screenY(lo, h.enter), v.screenY(lo, h.exit), shade(base, h.exit, 0.6))
		}
	}

	faceShade := 1.0
	if h.side == 1 {
		faceShade = sideShade
	}
	fillColumn(screen, v, x, v.screenY(hi, h.enter), v.screenY(lo, h.enter), shade(base, h.enter, faceShade))
}

func fillColumn(screen *ebiten.Image, v *view, x float32, top, bottom float64, clr color.Color) {
	top = common.Clamp(top, 0, v.height)
	bottom = common.Clamp(bottom, 0, v.height)
	if bottom <= top {
		return
	}
	vector.DrawFilledRect(screen, x, float32(top), columnWidth, float32(bottom-top), clr, false)
}

// shade darkens c with distance.
func shade(c color.Color, dist, factor float64) color.RGBA {
	k := common.Clamp((1-dist/fogDistance)*factor, minShade, 1)
	r, g, b, a := c.RGBA()
	return color.RGBA{
		R: uint8(float64(r>>8) * k),
		G: uint8(float64(g>>8) * k),
		B: uint8(float64(b>>8) * k),
		A: uint8(a >> 8),
	}
}

type billboardDraw struct {
	depth   float64
	lateral float64
	y       float64
	bb      *component.Billboard
}

func (r *RenderSystem) drawBillboards(w *ecs.World, screen *ebiten.Image, v *view) {
	var draws []billboardDraw
	ecs.ForEach2(w, component.BillboardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bb *component.Billboard, t *component.Transform) {
		rel := common.Vec3{X: t.X - v.x, Z: t.Z - v.z}
		depth := rel.X*v.forward.X + rel.Z*v.forward.Z
		if depth <= nearPlane {
			return
		}
		lateral := rel.X*v.right.X + rel.Z*v.right.Z
		draws = append(draws, billboardDraw{depth: depth, lateral: lateral, y: t.Y, bb: bb})
	})

	sort.Slice(draws, func(i, j int) bool { return draws[i].depth > draws[j].depth })

	columns := len(r.zbuf)
	for _, d := range draws {
		centerX := (d.lateral/(d.depth*v.plane) + 1) * v.width / 2
		halfW := d.bb.Width * v.focal / d.depth / 2
		top := v.screenY(d.y+d.bb.Lift+d.bb.Height, d.depth)
		bottom := v.screenY(d.y+d.bb.Lift, d.depth)

		clr := d.bb.Color
		if clr == nil {
			clr = colornames.White
		}
		tinted := shade(clr, d.depth, 1.2)

		first := int(math.Floor((centerX - halfW) / columnWidth))
		last := int(math.Ceil((centerX + halfW) / columnWidth))
		for col := first; col < last; col++ {
			if col < 0 || col >= columns || d.depth >= r.zbuf[col] {
				continue
			}
			fillColumn(screen, v, float32(col*columnWidth), top, bottom, tinted)
		}
	}
}

func drawCrosshair(screen *ebiten.Image, sw, sh float64) {
	cx, cy := float32(sw/2), float32(sh/2)
	clr := colornames.Whitesmoke
	vector.StrokeLine(screen, cx-crosshairSize, cy, cx+crosshairSize, cy, 1, clr, false)
	vector.StrokeLine(screen, cx, cy-crosshairSize, cx, cy+crosshairSize, 1, clr, false)
}
