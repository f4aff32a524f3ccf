// pkg/physics/player.go
package physics

import (
	"context"

	"github.com/opd-ai/go-physics4d/pkg/event"
	"github.com/opd-ai/go-physics4d/pkg/logging"
)

// playerState tracks the optional player body of a world. The key is a
// lookup handle only; the body itself lives in the body table.
type playerState struct {
	key      BodyKey
	grounded bool
}

// SetPlayerBody designates key as the player. Grounded state starts false
// and is recomputed on the next Step.
func (w *PhysicsWorld) SetPlayerBody(key BodyKey) {
	w.player = playerState{key: key}
	w.logger.Debug(context.Background(), "player body set",
		logging.Body(key),
		"live", w.bodies.Contains(key),
	)
}

// ClearPlayerBody removes the player designation without touching the body.
func (w *PhysicsWorld) ClearPlayerBody() {
	w.player = playerState{}
}

// PlayerKey returns the designated player key, if any.
func (w *PhysicsWorld) PlayerKey() (BodyKey, bool) {
	return w.player.key, !w.player.key.IsZero()
}

// ApplyPlayerMovement sets the player's X, Z and W velocity to those of v.
// Vertical velocity is left alone so gravity and jumps carry across frames.
func (w *PhysicsWorld) ApplyPlayerMovement(v Vec4) {
	b, ok := w.bodies.Get(w.player.key)
	if !ok {
		return
	}
	vel := b.velocity
	vel[0], vel[2], vel[3] = v[0], v[2], v[3]
	b.velocity = vel
}

// PlayerJump launches the player upward if it is grounded and reports
// whether a jump happened.
func (w *PhysicsWorld) PlayerJump() bool {
	b, ok := w.bodies.Get(w.player.key)
	if !ok || !w.player.grounded {
		return false
	}
	b.velocity[1] = w.config.JumpSpeed
	w.setPlayerGrounded(false)
	return true
}

// PlayerPosition returns the player's position, or false without a live player.
func (w *PhysicsWorld) PlayerPosition() (Vec4, bool) {
	b, ok := w.bodies.Get(w.player.key)
	if !ok {
		return Vec4{}, false
	}
	return b.position, true
}

// PlayerIsGrounded reports whether the last Step found the player standing on
// a static surface.
func (w *PhysicsWorld) PlayerIsGrounded() bool {
	return w.player.grounded && w.bodies.Contains(w.player.key)
}

func (w *PhysicsWorld) updatePlayerGrounded(grounded bool) {
	if w.player.key.IsZero() {
		return
	}
	if !w.bodies.Contains(w.player.key) {
		grounded = false
	}
	w.setPlayerGrounded(grounded)
}

func (w *PhysicsWorld) setPlayerGrounded(grounded bool) {
	if w.player.grounded == grounded {
		return
	}
	w.player.grounded = grounded
	w.publish(event.NewPlayerEvent(w, w.player.key.ID(), grounded))
}
