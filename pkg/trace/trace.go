// Package trace records world snapshots as a stream of MessagePack frames for
// offline inspection and replay comparison.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/opd-ai/go-physics4d/pkg/physics"
)

// BodyState is the recorded state of one body.
type BodyState struct {
	Index      uint32     `msgpack:"i"`
	Generation uint32     `msgpack:"g"`
	Position   [4]float32 `msgpack:"p"`
	Velocity   [4]float32 `msgpack:"v"`
	Static     bool       `msgpack:"s,omitempty"`
}

// Key returns the body key the state was captured from.
func (b BodyState) Key() physics.BodyKey {
	return physics.BodyKeyFromID(uint64(b.Generation)<<32 | uint64(b.Index))
}

// Frame is one snapshot of a world.
type Frame struct {
	Step   uint64      `msgpack:"step"`
	Time   float32     `msgpack:"t"`
	Bodies []BodyState `msgpack:"b"`
}

// Capture snapshots every live body of world in slot order. t is the
// simulated time to stamp on the frame.
func Capture(world *physics.PhysicsWorld, t float32) Frame {
	keys := world.Bodies()
	frame := Frame{
		Step:   world.StepCount(),
		Time:   t,
		Bodies: make([]BodyState, 0, len(keys)),
	}
	for _, key := range keys {
		body, ok := world.GetBody(key)
		if !ok {
			continue
		}
		frame.Bodies = append(frame.Bodies, BodyState{
			Index:      key.Index(),
			Generation: key.Generation(),
			Position:   body.Position(),
			Velocity:   body.Velocity(),
			Static:     body.IsStatic(),
		})
	}
	return frame
}

// Recorder writes frames to an underlying writer.
type Recorder struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	frames int
}

// NewRecorder returns a recorder writing to w. Call Flush when done.
func NewRecorder(w io.Writer) *Recorder {
	buf := bufio.NewWriter(w)
	return &Recorder{buf: buf, enc: msgpack.NewEncoder(buf)}
}

// Record encodes one frame.
func (r *Recorder) Record(frame Frame) error {
	if err := r.enc.Encode(&frame); err != nil {
		return fmt.Errorf("encode frame %d: %w", frame.Step, err)
	}
	r.frames++
	return nil
}

// Frames returns how many frames have been recorded.
func (r *Recorder) Frames() int {
	return r.frames
}

// Flush writes any buffered data.
func (r *Recorder) Flush() error {
	if err := r.buf.Flush(); err != nil {
		return fmt.Errorf("flush trace: %w", err)
	}
	return nil
}

// Reader decodes frames written by a Recorder.
type Reader struct {
	dec *msgpack.Decoder
}

// NewReader returns a reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
}

// Next decodes the next frame. It returns io.EOF at a clean end of stream.
func (r *Reader) Next() (Frame, error) {
	var frame Frame
	if err := r.dec.Decode(&frame); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	return frame, nil
}

// ReadAll decodes frames until the end of the stream.
func (r *Reader) ReadAll() ([]Frame, error) {
	var frames []Frame
	for {
		frame, err := r.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}
}
