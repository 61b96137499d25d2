package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type LevelTag struct{}

var LevelTagComponent = NewComponent[LevelTag]()

// Tags stores gameplay tags used by trigger listeners to filter what they react to.
type Tags struct {
	Names []string
}

// Has reports whether name is one of the tags.
func (t *Tags) Has(name string) bool {
	if t == nil || name == "" {
		return false
	}
	for _, n := range t.Names {
		if n == name {
			return true
		}
	}
	return false
}

var TagsComponent = NewComponent[Tags]()
