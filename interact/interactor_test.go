package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
	"github.com/milk9111/cemetery/item"
)

const pickableTag = "pickable"

type fakeCollector struct {
	added []*item.Definition
}

func (f *fakeCollector) Add(def *item.Definition) { f.added = append(f.added, def) }

type fakePrompt struct {
	shown []bool
}

func (f *fakePrompt) ShowPickUpItemPrompt(show bool) { f.shown = append(f.shown, show) }

func (f *fakePrompt) last() bool {
	if len(f.shown) == 0 {
		return false
	}
	return f.shown[len(f.shown)-1]
}

func spawnPickable(t *testing.T, w *ecs.World, def *item.Definition) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TagsComponent.Kind(), &component.Tags{Names: []string{pickableTag}}))
	require.NoError(t, ecs.Add(w, e, component.PickableComponent.Kind(), &component.Pickable{Item: def}))
	require.NoError(t, ecs.Add(w, e, component.TriggerComponent.Kind(), &component.Trigger{Radius: 1}))
	require.NoError(t, ecs.Add(w, e, component.BillboardComponent.Kind(), &component.Billboard{Width: 0.3, Height: 0.3}))
	return e
}

func newInteractor() (*Interactor, *fakeCollector, *fakePrompt) {
	c := &fakeCollector{}
	p := &fakePrompt{}
	return New(pickableTag, c, p, nil), c, p
}

var note = &item.Definition{ID: "crypt_note", Name: "Crypt note", Kind: item.Note{Text: "Beware the crypt"}}

func TestEnterTracksPickable(t *testing.T) {
	w := ecs.NewWorld()
	in, _, prompt := newInteractor()
	e := spawnPickable(t, w, note)

	in.OnTriggerEnter(w, e)

	tracked, ok := in.Tracked()
	require.True(t, ok)
	assert.Equal(t, e, tracked)
	assert.Equal(t, StateTracking, in.State())
	assert.Equal(t, []bool{true}, prompt.shown)
}

func TestEnterIgnoresUntaggedEntities(t *testing.T) {
	w := ecs.NewWorld()
	in, _, prompt := newInteractor()

	wall := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, wall, component.TagsComponent.Kind(), &component.Tags{Names: []string{"wall"}}))
	bare := ecs.CreateEntity(w)

	in.OnTriggerEnter(w, wall)
	in.OnTriggerEnter(w, bare)

	assert.Equal(t, StateIdle, in.State())
	assert.Empty(t, prompt.shown)
}

func TestExitReturnsToIdle(t *testing.T) {
	w := ecs.NewWorld()
	in, _, prompt := newInteractor()
	e := spawnPickable(t, w, note)

	in.OnTriggerEnter(w, e)
	in.OnTriggerExit(w, e)

	_, ok := in.Tracked()
	assert.False(t, ok)
	assert.Equal(t, []bool{true, false}, prompt.shown)
}

func TestLastEnterWinsAndAnyPickableExitClears(t *testing.T) {
	w := ecs.NewWorld()
	in, _, prompt := newInteractor()
	a := spawnPickable(t, w, note)
	b := spawnPickable(t, w, note)

	in.OnTriggerEnter(w, a)
	in.OnTriggerEnter(w, b)
	tracked, _ := in.Tracked()
	assert.Equal(t, b, tracked)

	in.OnTriggerExit(w, a)
	assert.Equal(t, StateIdle, in.State())
	assert.False(t, prompt.last())
}

func TestInteractWhileIdleIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	in, collector, prompt := newInteractor()

	in.Interact(w)

	assert.Empty(t, collector.added)
	assert.Empty(t, prompt.shown)
}

func TestInteractCollectsAndSchedulesDestroy(t *testing.T) {
	w := ecs.NewWorld()
	in, collector, prompt := newInteractor()
	e := spawnPickable(t, w, note)

	in.OnTriggerEnter(w, e)
	in.Interact(w)

	require.Len(t, collector.added, 1)
	assert.Same(t, note, collector.added[0])
	assert.Equal(t, StateIdle, in.State())
	assert.False(t, prompt.last())

	assert.False(t, ecs.Has(w, e, component.PickableComponent.Kind()))
	assert.False(t, ecs.Has(w, e, component.TriggerComponent.Kind()))
	assert.False(t, ecs.Has(w, e, component.BillboardComponent.Kind()))
	ttl, ok := ecs.Get(w, e, component.TTLComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1, ttl.Frames)

	in.Interact(w)
	assert.Len(t, collector.added, 1, "second interact must not collect again")
}

func TestInteractWithDestroyedTrackedEntityResets(t *testing.T) {
	w := ecs.NewWorld()
	in, collector, _ := newInteractor()
	e := spawnPickable(t, w, note)

	in.OnTriggerEnter(w, e)
	require.True(t, ecs.DestroyEntity(w, e))
	in.Interact(w)

	assert.Empty(t, collector.added)
	assert.Equal(t, StateIdle, in.State())
}

func TestNilCollaboratorsAreTolerated(t *testing.T) {
	w := ecs.NewWorld()
	in := New(pickableTag, nil, nil, nil)
	e := spawnPickable(t, w, note)

	in.OnTriggerEnter(w, e)
	in.Interact(w)

	assert.Equal(t, StateIdle, in.State())
}
