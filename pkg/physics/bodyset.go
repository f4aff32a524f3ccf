// pkg/physics/bodyset.go
package physics

import "fmt"

// BodyKey is a generational handle to a body in a BodySet. A key is valid only
// while its generation matches the slot's live generation; removal bumps the
// generation, so a stale key never resolves to a body that later reuses the slot.
// The zero BodyKey is never valid.
type BodyKey struct {
	index      uint32
	generation uint32
}

// Index returns the slot index.
func (k BodyKey) Index() uint32 { return k.index }

// Generation returns the generation the key was issued with.
func (k BodyKey) Generation() uint32 { return k.generation }

// IsZero reports whether k is the zero key.
func (k BodyKey) IsZero() bool { return k.generation == 0 }

// ID packs the key into a single integer, generation in the high 32 bits.
func (k BodyKey) ID() uint64 {
	return uint64(k.generation)<<32 | uint64(k.index)
}

// BodyKeyFromID reverses ID.
func BodyKeyFromID(id uint64) BodyKey {
	return BodyKey{index: uint32(id), generation: uint32(id >> 32)}
}

func (k BodyKey) String() string {
	return fmt.Sprintf("BodyKey(%dv%d)", k.index, k.generation)
}

type bodySlot struct {
	body       *RigidBody4D
	generation uint32
}

// BodySet stores bodies in reusable slots addressed by BodyKey.
type BodySet struct {
	slots []bodySlot
	free  []uint32
	count int
}

// NewBodySet returns an empty set.
func NewBodySet() *BodySet {
	return &BodySet{}
}

// Insert stores body and returns its key.
func (s *BodySet) Insert(body RigidBody4D) BodyKey {
	b := body
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		slot := &s.slots[idx]
		slot.body = &b
		s.count++
		return BodyKey{index: idx, generation: slot.generation}
	}

	idx := uint32(len(s.slots))
	s.slots = append(s.slots, bodySlot{body: &b, generation: 1})
	s.count++
	return BodyKey{index: idx, generation: 1}
}

// Remove frees the slot behind key and returns the removed body. It returns
// false if key is stale or out of range.
func (s *BodySet) Remove(key BodyKey) (RigidBody4D, bool) {
	slot, ok := s.slot(key)
	if !ok {
		return RigidBody4D{}, false
	}
	removed := *slot.body
	slot.body = nil
	slot.generation++
	if slot.generation == 0 {
		// Skip the never-valid generation on wrap-around.
		slot.generation = 1
	}
	s.free = append(s.free, key.index)
	s.count--
	return removed, true
}

// Get returns the body behind key, or false for a stale or unknown key.
// The pointer is valid until the body is removed.
func (s *BodySet) Get(key BodyKey) (*RigidBody4D, bool) {
	slot, ok := s.slot(key)
	if !ok {
		return nil, false
	}
	return slot.body, true
}

// Contains reports whether key refers to a live body.
func (s *BodySet) Contains(key BodyKey) bool {
	_, ok := s.slot(key)
	return ok
}

// Len returns the number of live bodies.
func (s *BodySet) Len() int {
	return s.count
}

// Keys returns a snapshot of live keys in slot order.
func (s *BodySet) Keys() []BodyKey {
	keys := make([]BodyKey, 0, s.count)
	for i := range s.slots {
		if s.slots[i].body != nil {
			keys = append(keys, BodyKey{index: uint32(i), generation: s.slots[i].generation})
		}
	}
	return keys
}

// Each calls fn for every live body in slot order. fn must not insert or
// remove bodies.
func (s *BodySet) Each(fn func(BodyKey, *RigidBody4D)) {
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.body != nil {
			fn(BodyKey{index: uint32(i), generation: slot.generation}, slot.body)
		}
	}
}

func (s *BodySet) slot(key BodyKey) (*bodySlot, bool) {
	if key.generation == 0 || int(key.index) >= len(s.slots) {
		return nil, false
	}
	slot := &s.slots[key.index]
	if slot.body == nil || slot.generation != key.generation {
		return nil, false
	}
	return slot, true
}
