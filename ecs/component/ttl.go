package component

// TTL is a frame-based time-to-live. The entity is destroyed by the TTL
// system once Frames reaches zero, which defers destruction to the end of
// the tick that requested it.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
