package component

// Trigger is a static sensor volume on the horizontal plane.
type Trigger struct {
	Radius float64
}

var TriggerComponent = NewComponent[Trigger]()

// TriggerSensor marks an entity whose overlaps with triggers are reported to listeners.
type TriggerSensor struct {
	Radius float64
}

var TriggerSensorComponent = NewComponent[TriggerSensor]()
