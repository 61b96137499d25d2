package entity

import (
	"fmt"

	"github.com/milk9111/cemetery/common"
	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
	"github.com/milk9111/cemetery/item"
	"github.com/milk9111/cemetery/levels"
	"github.com/milk9111/cemetery/physics"
)

const floorThickness = 1.0

// LoadedLevel is what LoadLevelToWorld spawned.
type LoadedLevel struct {
	Level     ecs.Entity
	Player    ecs.Entity
	Pickables []ecs.Entity
}

// LoadLevelToWorld fills phys with the level's solids and spawns the level,
// player and pickable entities into w.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, catalog *item.Catalog, phys *physics.World) (*LoadedLevel, error) {
	if w == nil || lvl == nil || lvl.Grid == nil {
		return nil, fmt.Errorf("load level: world or level is nil")
	}

	for _, p := range lvl.Pickables {
		if _, err := catalog.Get(p.Item); err != nil {
			return nil, fmt.Errorf("load level %s: %w", lvl.Name, err)
		}
	}

	if phys != nil {
		phys.Clear()
		AddLevelSolids(phys, lvl.Grid)
	}

	out := &LoadedLevel{}
	out.Level = ecs.CreateEntity(w)
	if err := ecs.Add(w, out.Level, component.LevelTagComponent.Kind(), &component.LevelTag{}); err != nil {
		return nil, fmt.Errorf("load level %s: %w", lvl.Name, err)
	}
	if err := ecs.Add(w, out.Level, component.LevelGeometryComponent.Kind(), &component.LevelGeometry{Grid: lvl.Grid}); err != nil {
		return nil, fmt.Errorf("load level %s: %w", lvl.Name, err)
	}

	player, err := NewPlayerAt(w, lvl.Spawn)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", lvl.Name, err)
	}
	out.Player = player

	for _, p := range lvl.Pickables {
		def, _ := catalog.Get(p.Item)
		e, err := NewPickable(w, def, p.X, p.Z)
		if err != nil {
			return nil, fmt.Errorf("load level %s: %w", lvl.Name, err)
		}
		out.Pickables = append(out.Pickables, e)
	}

	return out, nil
}

// AddLevelSolids converts grid cells into collision boxes. Full walls go on
// the walls layer so the grounded probe never reports them; floor, tombs
// and lintels are ground.
func AddLevelSolids(phys *physics.World, g *levels.Grid) {
	phys.AddBox(physics.Box{
		Min:   common.Vec3{X: 0, Y: -floorThickness, Z: 0},
		Max:   common.Vec3{X: float64(g.Width) * levels.CellSize, Y: 0, Z: float64(g.Depth) * levels.CellSize},
		Layer: physics.LayerGround,
	})

	for row := 0; row < g.Depth; row++ {
		for col := 0; col < g.Width; col++ {
			cell := g.At(col, row)
			lo, hi, ok := g.Span(cell)
			if !ok {
				continue
			}
			layer := physics.LayerGround
			if cell == levels.CellWall {
				layer = physics.LayerWalls
			}
			x := float64(col) * levels.CellSize
			z := float64(row) * levels.CellSize
			phys.AddBox(physics.Box{
				Min:   common.Vec3{X: x, Y: lo, Z: z},
				Max:   common.Vec3{X: x + levels.CellSize, Y: hi, Z: z + levels.CellSize},
				Layer: layer,
			})
		}
	}
}
