package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
)

const (
	collisionTypeSensor cp.CollisionType = iota + 1
	collisionTypeTrigger
)

// TriggerListener receives overlap transitions for the sensor it was
// registered on.
type TriggerListener interface {
	OnTriggerEnter(w *ecs.World, other ecs.Entity)
	OnTriggerExit(w *ecs.World, other ecs.Entity)
}

// TriggerSystem mirrors Trigger and TriggerSensor entities into a chipmunk
// space on the XZ plane and reports begin/separate contacts as enter/exit
// events once the step has finished.
type TriggerSystem struct {
	space         *cp.Space
	handlersReady bool

	sensors  map[ecs.Entity]*cp.Body
	triggers map[ecs.Entity]*cp.Shape
	shapes   map[*cp.Shape]ecs.Entity

	listeners map[ecs.Entity][]TriggerListener
	pending   []ecs.TriggerEvent
}

func NewTriggerSystem() *TriggerSystem {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &TriggerSystem{
		space:     space,
		sensors:   make(map[ecs.Entity]*cp.Body),
		triggers:  make(map[ecs.Entity]*cp.Shape),
		shapes:    make(map[*cp.Shape]ecs.Entity),
		listeners: make(map[ecs.Entity][]TriggerListener),
	}
}

// Listen registers l for overlaps of the sensor entity.
func (ts *TriggerSystem) Listen(sensor ecs.Entity, l TriggerListener) {
	if ts == nil || l == nil {
		return
	}
	ts.listeners[sensor] = append(ts.listeners[sensor], l)
}

func (ts *TriggerSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
		return
	}

	ts.ensureHandlers()
	ts.cleanup(w)
	ts.syncTriggers(w)
	ts.syncSensors(w)

	ts.space.Step(w.DeltaTime())

	ts.dispatch(w)
}

func (ts *TriggerSystem) ensureHandlers() {
	if ts.handlersReady {
		return
	}

	handler := ts.space.NewCollisionHandler(collisionTypeSensor, collisionTypeTrigger)
	handler.UserData = ts
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*TriggerSystem); ok && sys != nil {
			sys.record(arb, ecs.TriggerEventEnter)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if sys, ok := userData.(*TriggerSystem); ok && sys != nil {
			sys.record(arb, ecs.TriggerEventExit)
		}
	}

	ts.handlersReady = true
}

func (ts *TriggerSystem) record(arb *cp.Arbiter, kind ecs.TriggerEventKind) {
	a, b := arb.Shapes()
	sensor, okA := ts.shapes[a]
	trigger, okB := ts.shapes[b]
	if !okA || !okB {
		return
	}
	if a.Body() == ts.space.StaticBody {
		sensor, trigger = trigger, sensor
	}
	ts.pending = append(ts.pending, ecs.TriggerEvent{Kind: kind, Sensor: sensor, Trigger: trigger})
}

// cleanup drops shapes whose entity died or lost its component.
func (ts *TriggerSystem) cleanup(w *ecs.World) {
	for e, shape := range ts.triggers {
		if w.IsAlive(e) && ecs.Has(w, e, component.TriggerComponent.Kind()) {
			continue
		}
		ts.space.RemoveShape(shape)
		delete(ts.shapes, shape)
		delete(ts.triggers, e)
	}

	for e, body := range ts.sensors {
		if w.IsAlive(e) && ecs.Has(w, e, component.TriggerSensorComponent.Kind()) {
			continue
		}
		body.EachShape(func(shape *cp.Shape) {
			ts.space.RemoveShape(shape)
			delete(ts.shapes, shape)
		})
		ts.space.RemoveBody(body)
		delete(ts.sensors, e)
		delete(ts.listeners, e)
	}
}

func (ts *TriggerSystem) syncTriggers(w *ecs.World) {
	ecs.ForEach2(w, component.TriggerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, trig *component.Trigger, t *component.Transform) {
		if _, ok := ts.triggers[e]; ok || trig.Radius <= 0 {
			return
		}
		shape := cp.NewCircle(ts.space.StaticBody, trig.Radius, cp.Vector{X: t.X, Y: t.Z})
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeTrigger)
		ts.space.AddShape(shape)
		ts.triggers[e] = shape
		ts.shapes[shape] = e
	})
}

func (ts *TriggerSystem) syncSensors(w *ecs.World) {
	ecs.ForEach2(w, component.TriggerSensorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sensor *component.TriggerSensor, t *component.Transform) {
		body, ok := ts.sensors[e]
		if !ok {
			if sensor.Radius <= 0 {
				return
			}
			body = ts.space.AddBody(cp.NewBody(1, cp.MomentForCircle(1, 0, sensor.Radius, cp.Vector{})))
			shape := cp.NewCircle(body, sensor.Radius, cp.Vector{})
			shape.SetCollisionType(collisionTypeSensor)
			ts.space.AddShape(shape)
			ts.sensors[e] = body
			ts.shapes[shape] = e
		}
		body.SetPosition(cp.Vector{X: t.X, Y: t.Z})
		body.SetVelocity(0, 0)
	})
}

func (ts *TriggerSystem) dispatch(w *ecs.World) {
	events := ts.pending
	ts.pending = nil

	for _, evt := range events {
		w.Events().Push(ecs.Event{Type: string(evt.Kind), Data: evt})
	}

	var keep []ecs.Event
	for _, evt := range w.Events().Drain() {
		te, ok := evt.Data.(ecs.TriggerEvent)
		if !ok {
			keep = append(keep, evt)
			continue
		}
		for _, l := range ts.listeners[te.Sensor] {
			switch te.Kind {
			case ecs.TriggerEventEnter:
				l.OnTriggerEnter(w, te.Trigger)
			case ecs.TriggerEventExit:
				l.OnTriggerExit(w, te.Trigger)
			}
		}
	}
	for _, evt := range keep {
		w.Events().Push(evt)
	}
}
