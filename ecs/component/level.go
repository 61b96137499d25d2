package component

import "github.com/milk9111/cemetery/levels"

// LevelGeometry exposes the loaded grid to rendering.
type LevelGeometry struct {
	Grid *levels.Grid
}

var LevelGeometryComponent = NewComponent[LevelGeometry]()
