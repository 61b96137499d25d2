package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/cemetery/item"
)

func TestEmbeddedPrefabsLoad(t *testing.T) {
	for _, name := range []string{"player.yaml", "pickable.yaml", "prefabs/player.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Components)
		})
	}
}

func TestPlayerControllerSpecDefaults(t *testing.T) {
	spec, err := PlayerControllerSpec("player.yaml")
	require.NoError(t, err)

	assert.Equal(t, 4.0, spec.MoveSpeed)
	assert.Equal(t, 6.0, spec.SprintSpeed)
	assert.Equal(t, 3.0, spec.CrouchSpeed)
	assert.Equal(t, 1.2, spec.JumpHeight)
	assert.Equal(t, -15.0, spec.Gravity)
	assert.Equal(t, 0.5, spec.CrouchingHeightRatio)
	assert.Equal(t, 0.25, spec.CrouchingTransitionTime)
	assert.Equal(t, -0.14, spec.GroundedOffset)
	assert.Equal(t, []string{"ground"}, spec.GroundLayers)
	assert.False(t, spec.MovementDisabled)
}

func TestDecodeComponentSpecValidates(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		wantErr bool
	}{
		{"ok", map[string]any{"radius": 0.4, "height": 1.8}, false},
		{"zero_radius", map[string]any{"radius": 0.0, "height": 1.8}, true},
		{"height_below_radius", map[string]any{"radius": 1.0, "height": 0.5}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeComponentSpec[CharacterBodyComponentSpec](tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCrouchRatioRange(t *testing.T) {
	spec, err := PlayerControllerSpec("player.yaml")
	require.NoError(t, err)

	spec.CrouchingHeightRatio = 0.05
	assert.Error(t, Validate(spec))

	spec.CrouchingHeightRatio = 1
	assert.NoError(t, Validate(spec))
}

func TestYAMLColor(t *testing.T) {
	var out struct {
		A YAMLColor `yaml:"a"`
		B YAMLColor `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: \"#c9a227\"\nb: \"10203040\"\n"), &out))
	assert.Equal(t, color.NRGBA{R: 0xc9, G: 0xa2, B: 0x27, A: 0xff}, out.A.Color)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, out.B.Color)

	var bad struct {
		C YAMLColor `yaml:"c"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("c: \"#abc\"\n"), &bad))
}

func TestBillboardColorFor(t *testing.T) {
	raw := map[string]any{
		"width": 0.3, "height": 0.3,
		"color":       "#ffffff",
		"kind_colors": map[string]any{"box_key": "#000000"},
	}
	spec, err := DecodeComponentSpec[BillboardComponentSpec](raw)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{A: 0xff}, spec.ColorFor("box_key").Color)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, spec.ColorFor("note").Color)
}

func TestEmbeddedItemCatalog(t *testing.T) {
	catalog, err := item.LoadCatalog(PrefabsFS, ItemsDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"box_key", "crypt_note", "mausoleum_key"}, catalog.IDs())

	note, err := catalog.Get("crypt_note")
	require.NoError(t, err)
	assert.NotEmpty(t, note.Text())
}

func TestCleanPrefabPath(t *testing.T) {
	assert.Equal(t, "player.yaml", cleanPrefabPath("prefabs/player.yaml"))
	assert.Equal(t, "items/box_key.yaml", cleanPrefabPath("items/box_key.yaml"))
	assert.Equal(t, "", cleanPrefabPath(""))
}

func TestWatcherReportsYAMLWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "player.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: player\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no watcher event")
	}
}

func TestIsItemAsset(t *testing.T) {
	assert.True(t, IsItemAsset(filepath.Join("prefabs", "items", "box_key.yaml")))
	assert.False(t, IsItemAsset(filepath.Join("prefabs", "player.yaml")))
}
