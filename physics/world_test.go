package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cemetery/common"
)

func v(x, y, z float64) common.Vec3 { return common.Vec3{X: x, Y: y, Z: z} }

// crypt is a 10x10 floor slab with a wall at x in [2,3], a lintel above z in
// [4,5] and a short pillar on the walls layer.
func crypt() *World {
	w := NewWorld()
	w.AddBox(Box{Min: v(-5, -1, -5), Max: v(5, 0, 5), Layer: LayerGround})
	w.AddBox(Box{Min: v(2, 0, -5), Max: v(3, 3, 5), Layer: LayerGround})
	w.AddBox(Box{Min: v(-5, 1.4, 4), Max: v(2, 3, 5), Layer: LayerGround})
	w.AddBox(Box{Min: v(-4, 0, -4), Max: v(-3, 0.6, -3), Layer: LayerWalls})
	return w
}

func TestParseLayers(t *testing.T) {
	mask, err := ParseLayers([]string{"ground", " Walls "})
	require.NoError(t, err)
	assert.Equal(t, LayerGround|LayerWalls, mask)

	mask, err = ParseLayers(nil)
	require.NoError(t, err)
	assert.Zero(t, mask)

	_, err = ParseLayers([]string{"water"})
	require.ErrorIs(t, err, ErrUnknownLayer)
}

func TestCheckSphere(t *testing.T) {
	w := crypt()

	tests := []struct {
		name   string
		center common.Vec3
		radius float64
		mask   uint32
		want   bool
	}{
		{"standing_on_floor", v(0, 0.14, 0), 0.5, LayerGround, true},
		{"high_in_air", v(0, 2, 0), 0.5, LayerGround, false},
		{"touching_is_not_overlap", v(0, 0.5, 0), 0.5, LayerGround, false},
		{"pillar_on_walls_layer", v(-3.5, 0.9, -3.5), 0.5, LayerWalls, true},
		{"pillar_masked_out", v(-3.5, 0.9, -3.5), 0.5, LayerGround, false},
		{"zero_radius", v(0, 0, 0), 0, LayerAll, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, w.CheckSphere(tc.center, tc.radius, tc.mask))
		})
	}
}

func TestRaycast(t *testing.T) {
	w := crypt()
	up := v(0, 1, 0)

	assert.True(t, w.Raycast(v(0, 0, 4.5), up, 1.8, LayerGround), "lintel above")
	assert.False(t, w.Raycast(v(0, 0, 4.5), up, 1.3, LayerGround), "lintel out of reach")
	assert.False(t, w.Raycast(v(0, 0, 0), up, 10, LayerGround), "open sky; floor under the origin is ignored")
	assert.False(t, w.Raycast(v(0, 0, 4.5), up, 5, LayerWalls), "masked out")

	d, ok := w.RaycastDistance(v(0, 1, 0), v(1, 0, 0), 10, LayerAll)
	require.True(t, ok)
	assert.InDelta(t, 2, d, 1e-9)

	_, ok = w.RaycastDistance(v(0, 1, 0), common.Vec3{}, 10, LayerAll)
	assert.False(t, ok)
}

func TestMoveCharacterFallsOntoFloor(t *testing.T) {
	w := crypt()
	pos := w.MoveCharacter(v(0, 0.05, 0), 0.4, 1.8, v(0, -0.2, 0))
	assert.InDelta(t, 0, pos.Y, 1e-9)
}

func TestMoveCharacterSlidesAlongWall(t *testing.T) {
	w := crypt()
	pos := w.MoveCharacter(v(1, 0, 0), 0.4, 1.8, v(1, 0, 0.5))

	assert.InDelta(t, 1.6, pos.X, 1e-9, "stopped at wall face")
	assert.InDelta(t, 0.5, pos.Z, 1e-9, "tangential motion kept")
}

func TestMoveCharacterLintelRequiresCrouch(t *testing.T) {
	w := crypt()

	standing := w.MoveCharacter(v(0, 0, 3), 0.4, 1.8, v(0, 0, 0.8))
	assert.InDelta(t, 3.6, standing.Z, 1e-9)

	crouched := w.MoveCharacter(v(0, 0, 3), 0.4, 0.9, v(0, 0, 0.8))
	assert.InDelta(t, 3.8, crouched.Z, 1e-9)
}

func TestMoveCharacterHeadHitsCeiling(t *testing.T) {
	w := crypt()
	pos := w.MoveCharacter(v(0, 0.3, 4.5), 0.4, 0.9, v(0, 0.5, 0))
	assert.InDelta(t, 0.5, pos.Y, 1e-9)
}

func TestNilWorldMovesFreely(t *testing.T) {
	var w *World
	assert.Equal(t, v(1, 2, 3), w.MoveCharacter(v(0, 0, 0), 0.4, 1.8, v(1, 2, 3)))
	assert.False(t, w.CheckSphere(v(0, 0, 0), 1, LayerAll))
	assert.False(t, w.Raycast(v(0, 0, 0), v(0, 1, 0), 1, LayerAll))
}
