package reflector

// PerfMetrics is the coarse per-frame performance summary reported by the
// host application via PerfProvider.
type PerfMetrics struct {
	FPS         float64 `json:"fps"`
	FrameTimeMs float64 `json:"frameTimeMs"`
	EntityCount int     `json:"entityCount"`
}

// SceneNode is one node of the host application's scene graph, reported as
// a flat list and reconstructed into a tree by the server. ParentID 0 marks
// a root node.
type SceneNode struct {
	ID       uint64
	ParentID uint64
	Type     string
	Name     string // empty if unnamed
}

// PropertyType enumerates the value kinds the inspector UI knows how to
// render.
type PropertyType string

const (
	PropertyFloat    PropertyType = "float"
	PropertyInt      PropertyType = "int"
	PropertyString   PropertyType = "string"
	PropertyColor    PropertyType = "color"
	PropertyPoints2D PropertyType = "points2d"
)

// Property is one named, typed value of an entity.
type Property struct {
	Name  string       `json:"name"`
	Type  PropertyType `json:"type"`
	Value any          `json:"value"`
}

// FloatProperty builds a float-typed property.
func FloatProperty(name string, v float64) Property {
	return Property{Name: name, Type: PropertyFloat, Value: v}
}

// IntProperty builds an int-typed property.
func IntProperty(name string, v int) Property {
	return Property{Name: name, Type: PropertyInt, Value: v}
}

// StringProperty builds a string-typed property.
func StringProperty(name, v string) Property {
	return Property{Name: name, Type: PropertyString, Value: v}
}

// ColorProperty builds a color property from a hex string (e.g. "#ff8800").
func ColorProperty(name, hex string) Property {
	return Property{Name: name, Type: PropertyColor, Value: hex}
}

// Points2DProperty builds a property holding a 2D point list.
func Points2DProperty(name string, pts [][2]float64) Property {
	value := make([][]float64, len(pts))
	for i, p := range pts {
		value[i] = []float64{p[0], p[1]}
	}
	return Property{Name: name, Type: PropertyPoints2D, Value: value}
}

// EntityInfo is the detailed view of a single entity.
type EntityInfo struct {
	ID         uint64
	Type       string
	Name       string // empty if unnamed
	Properties []Property
}

// PerfProvider supplies the host application's frame-level metrics.
type PerfProvider interface {
	Perf() PerfMetrics
}

// SceneProvider supplies the host application's scene graph as a flat node
// list. Node order is preserved in the reconstructed tree.
type SceneProvider interface {
	Scene() []SceneNode
}

// EntityProvider resolves a single entity by id. The second return value
// reports whether the entity exists.
type EntityProvider interface {
	Entity(id uint64) (EntityInfo, bool)
}
