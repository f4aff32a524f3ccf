// pkg/physics/filter.go
package physics

// CollisionFilter assigns a body to collision layers and selects which layers
// it reacts to.
type CollisionFilter struct {
	// Layer is the bitmask of layers this object belongs to. Zero means layer 1.
	Layer uint32 `json:"layer,omitempty" yaml:"layer,omitempty"`
	// Mask is the bitmask of layers this object collides with. Zero means all.
	Mask uint32 `json:"mask,omitempty" yaml:"mask,omitempty"`
}

// Predefined layers.
const (
	LayerDefault uint32 = 1 << iota
	LayerPlayer
	LayerStatic
	LayerDebris
	LayerTrigger

	LayerAll uint32 = 0xFFFFFFFF
)

// DefaultFilter belongs to the default layer and collides with everything.
var DefaultFilter = CollisionFilter{Layer: LayerDefault, Mask: LayerAll}

// NewFilter returns a filter for the given layer and mask.
func NewFilter(layer, mask uint32) CollisionFilter {
	return CollisionFilter{Layer: layer, Mask: mask}
}

func (f CollisionFilter) layer() uint32 {
	if f.Layer == 0 {
		return LayerDefault
	}
	return f.Layer
}

func (f CollisionFilter) mask() uint32 {
	if f.Mask == 0 {
		return LayerAll
	}
	return f.Mask
}

// Matches reports whether two filtered objects should collide. Both sides must
// accept the other's layer.
func (f CollisionFilter) Matches(other CollisionFilter) bool {
	return f.layer()&other.mask() != 0 && other.layer()&f.mask() != 0
}
