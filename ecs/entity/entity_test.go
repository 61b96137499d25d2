package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cemetery/common"
	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
	"github.com/milk9111/cemetery/item"
	"github.com/milk9111/cemetery/levels"
	"github.com/milk9111/cemetery/physics"
	"github.com/milk9111/cemetery/prefabs"
)

func testCatalog(t *testing.T) *item.Catalog {
	t.Helper()
	catalog, err := item.LoadCatalog(prefabs.PrefabsFS, prefabs.ItemsDir)
	require.NoError(t, err)
	return catalog
}

func TestNewPlayerAt(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, levels.Spawn{X: 2.5, Z: 1.5, Yaw: 90})
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.CameraRigComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.TriggerSensorComponent.Kind()))

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Transform{X: 2.5, Y: 0, Z: 1.5, Yaw: 90, ScaleY: 1}, *tr)

	ctrl, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	require.True(t, ok)
	assert.True(t, ctrl.MovementEnabled)
	assert.Equal(t, physics.LayerGround, ctrl.GroundLayers)

	st, ok := ecs.Get(w, e, component.MovementStateComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, ctrl.JumpTimeout, st.JumpTimeoutDelta)
	assert.Equal(t, ctrl.FallTimeout, st.FallTimeoutDelta)
	assert.Equal(t, 1.0, st.TargetHeightRatio)
}

func TestApplyPlayerControllerKeepsEnabledFlag(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayer(w)
	require.NoError(t, err)

	ctrl, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	ctrl.MovementEnabled = false

	spec, err := prefabs.PlayerControllerSpec(playerPrefab)
	require.NoError(t, err)
	spec.MoveSpeed = 5.5
	require.NoError(t, ApplyPlayerController(w, e, spec))

	ctrl, _ = ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	assert.Equal(t, 5.5, ctrl.MoveSpeed)
	assert.False(t, ctrl.MovementEnabled)

	spec.GroundLayers = []string{"lava"}
	assert.ErrorIs(t, ApplyPlayerController(w, e, spec), physics.ErrUnknownLayer)
}

func TestNewPickableTintsByKind(t *testing.T) {
	w := ecs.NewWorld()
	catalog := testCatalog(t)
	def, err := catalog.Get("mausoleum_key")
	require.NoError(t, err)

	e, err := NewPickable(w, def, 4.5, 3.5)
	require.NoError(t, err)

	p, ok := ecs.Get(w, e, component.PickableComponent.Kind())
	require.True(t, ok)
	assert.Same(t, def, p.Item)

	tags, ok := ecs.Get(w, e, component.TagsComponent.Kind())
	require.True(t, ok)
	assert.True(t, tags.Has("pickable"))

	trig, ok := ecs.Get(w, e, component.TriggerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1.0, trig.Radius)

	bb, ok := ecs.Get(w, e, component.BillboardComponent.Kind())
	require.True(t, ok)
	r, g, b, _ := bb.Color.RGBA()
	assert.Equal(t, [3]uint32{0xc9, 0xa2, 0x27}, [3]uint32{r >> 8, g >> 8, b >> 8})

	_, err = NewPickable(w, nil, 0, 0)
	assert.Error(t, err)
}

func TestBuildEntityRejectsMissingPrefab(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildEntity(w, "ghost.yaml")
	assert.Error(t, err)
	assert.Equal(t, 0, ecs.Count(w, component.TransformComponent.Kind()))

	_, err = BuildEntity(nil, playerPrefab)
	assert.Error(t, err)
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.Load("crypt")
	require.NoError(t, err)

	w := ecs.NewWorld()
	phys := physics.NewWorld()
	loaded, err := LoadLevelToWorld(w, lvl, testCatalog(t), phys)
	require.NoError(t, err)

	geo, ok := ecs.Get(w, loaded.Level, component.LevelGeometryComponent.Kind())
	require.True(t, ok)
	assert.Same(t, lvl.Grid, geo.Grid)
	assert.Len(t, loaded.Pickables, len(lvl.Pickables))
	assert.Equal(t, 1, ecs.Count(w, component.PlayerTagComponent.Kind()))

	// The player spawns standing on the floor slab, clear of walls.
	tr, _ := ecs.Get(w, loaded.Player, component.TransformComponent.Kind())
	feet := common.Vec3{X: tr.X, Y: tr.Y, Z: tr.Z}
	assert.True(t, phys.CheckSphere(feet.Add(common.Vec3{Y: 0.14}), 0.5, physics.LayerGround))
	assert.False(t, phys.CheckSphere(feet.Add(common.Vec3{Y: 0.9}), 0.3, physics.LayerAll))

	// Walls are on their own layer.
	assert.True(t, phys.CheckSphere(common.Vec3{X: 0.5, Y: 1, Z: 0.5}, 0.1, physics.LayerWalls))
	assert.False(t, phys.CheckSphere(common.Vec3{X: 0.5, Y: 1, Z: 0.5}, 0.1, physics.LayerGround))

	// The lintel only blocks above its height.
	assert.False(t, phys.CheckSphere(common.Vec3{X: 6.5, Y: 1, Z: 6.5}, 0.1, physics.LayerAll))
	assert.True(t, phys.CheckSphere(common.Vec3{X: 6.5, Y: 2, Z: 6.5}, 0.1, physics.LayerGround))

	// Tombs are low ground blocks.
	d, hit := phys.RaycastDistance(common.Vec3{X: 3.5, Y: 2, Z: 2.5}, common.Vec3{Y: -1}, 5, physics.LayerGround)
	require.True(t, hit)
	assert.InDelta(t, 2-levels.TombHeight, d, 1e-9)
}

func TestLoadLevelRejectsUnknownItem(t *testing.T) {
	lvl, err := levels.Load("crypt")
	require.NoError(t, err)
	lvl.Pickables = append(lvl.Pickables, levels.Placement{Item: "skull", X: 1.5, Z: 1.5})

	w := ecs.NewWorld()
	_, err = LoadLevelToWorld(w, lvl, testCatalog(t), physics.NewWorld())
	assert.ErrorIs(t, err, item.ErrNotFound)
	assert.Equal(t, 0, ecs.Count(w, component.LevelTagComponent.Kind()))
}

func TestAddLevelSolidsCoversGrid(t *testing.T) {
	g, err := levels.NewGrid([]string{"#.#", "T=."}, 3)
	require.NoError(t, err)

	phys := physics.NewWorld()
	AddLevelSolids(phys, g)

	// floor + two walls + tomb + lintel
	assert.Len(t, phys.Boxes(), 5)
	assert.Equal(t, float64(g.Width), phys.Boxes()[0].Max.X)
}
