package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
)

type recordingListener struct {
	entered []ecs.Entity
	exited  []ecs.Entity
}

func (r *recordingListener) OnTriggerEnter(w *ecs.World, other ecs.Entity) {
	r.entered = append(r.entered, other)
}

func (r *recordingListener) OnTriggerExit(w *ecs.World, other ecs.Entity) {
	r.exited = append(r.exited, other)
}

func TestTriggerSystemDispatchesEnterAndExit(t *testing.T) {
	w := ecs.NewWorld()

	trigger := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, trigger, component.TransformComponent.Kind(), &component.Transform{X: 0, Z: 0}))
	require.NoError(t, ecs.Add(w, trigger, component.TriggerComponent.Kind(), &component.Trigger{Radius: 1}))

	sensor := ecs.CreateEntity(w)
	pos := &component.Transform{X: 5, Z: 5}
	require.NoError(t, ecs.Add(w, sensor, component.TransformComponent.Kind(), pos))
	require.NoError(t, ecs.Add(w, sensor, component.TriggerSensorComponent.Kind(), &component.TriggerSensor{Radius: 0.3}))

	sys := NewTriggerSystem()
	listener := &recordingListener{}
	sys.Listen(sensor, listener)

	step(w, sys, frame)
	assert.Empty(t, listener.entered)

	pos.X, pos.Z = 0.5, 0
	step(w, sys, frame)
	assert.Equal(t, []ecs.Entity{trigger}, listener.entered)

	step(w, sys, frame)
	assert.Len(t, listener.entered, 1, "staying inside does not re-enter")

	pos.X, pos.Z = 5, 5
	step(w, sys, frame)
	assert.Equal(t, []ecs.Entity{trigger}, listener.exited)
}

func TestTriggerSystemKeepsOtherEvents(t *testing.T) {
	w := ecs.NewWorld()
	w.Events().Push(ecs.Event{Type: "note_closed"})

	step(w, NewTriggerSystem(), frame)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, "note_closed", events[0].Type)
}

func TestTriggerSystemOnlyNotifiesOwnSensor(t *testing.T) {
	w := ecs.NewWorld()

	trigger := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, trigger, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, trigger, component.TriggerComponent.Kind(), &component.Trigger{Radius: 1}))

	near := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, near, component.TransformComponent.Kind(), &component.Transform{X: 0.2}))
	require.NoError(t, ecs.Add(w, near, component.TriggerSensorComponent.Kind(), &component.TriggerSensor{Radius: 0.3}))

	far := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, far, component.TransformComponent.Kind(), &component.Transform{X: 10}))
	require.NoError(t, ecs.Add(w, far, component.TriggerSensorComponent.Kind(), &component.TriggerSensor{Radius: 0.3}))

	sys := NewTriggerSystem()
	nearListener, farListener := &recordingListener{}, &recordingListener{}
	sys.Listen(near, nearListener)
	sys.Listen(far, farListener)

	step(w, sys, frame)
	assert.Equal(t, []ecs.Entity{trigger}, nearListener.entered)
	assert.Empty(t, farListener.entered)
}
