// Package snapshot encodes garden state for transport. Payloads are JSON,
// optionally wrapped in a zstd frame; decoding detects which.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/shared-garden/internal/garden"
)

// Frame types.
const (
	FrameUpdate = "update" // state after a command
	FrameEnd    = "end"    // final state once the game is over
)

// ContentEncoding is the HTTP content-coding name for compressed payloads.
const ContentEncoding = "zstd"

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Frame is one broadcast message.
type Frame struct {
	Type   string           `json:"type"`
	Seq    uint64           `json:"seq"`
	State  *garden.Snapshot `json:"state"`
	Winner string           `json:"winner,omitempty"`
	Reason string           `json:"reason,omitempty"`
}

// Codec converts frames and snapshots to bytes. It is safe for concurrent
// use.
type Codec struct {
	compress bool
	enc      *zstd.Encoder
	dec      *zstd.Decoder
}

// NewCodec creates a codec. When compress is false payloads are plain JSON,
// but compressed input is still accepted by the decode methods.
func NewCodec(compress bool) (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("snapshot: cannot create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("snapshot: cannot create zstd decoder: %w", err)
	}
	return &Codec{compress: compress, enc: enc, dec: dec}, nil
}

// Compressed reports whether Encode methods produce zstd output.
func (c *Codec) Compressed() bool { return c.compress }

// Close releases the zstd resources.
func (c *Codec) Close() {
	c.enc.Close()
	c.dec.Close()
}

// EncodeFrame encodes a broadcast frame.
func (c *Codec) EncodeFrame(f Frame) ([]byte, error) {
	return c.marshal(f, c.compress)
}

// DecodeFrame decodes a frame produced by any Codec.
func (c *Codec) DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := c.unmarshal(data, &f); err != nil {
		return Frame{}, err
	}
	if f.State == nil {
		return Frame{}, fmt.Errorf("snapshot: frame %d has no state", f.Seq)
	}
	return f, nil
}

// EncodeState encodes a bare snapshot. compress overrides the codec
// default so HTTP handlers can follow Accept-Encoding.
func (c *Codec) EncodeState(s *garden.Snapshot, compress bool) ([]byte, error) {
	return c.marshal(s, compress)
}

// DecodeState decodes a bare snapshot.
func (c *Codec) DecodeState(data []byte) (*garden.Snapshot, error) {
	var s garden.Snapshot
	if err := c.unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// IsCompressed reports whether data starts with a zstd frame header.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

func (c *Codec) marshal(v any, compress bool) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot: cannot encode: %w", err)
	}
	if !compress {
		return raw, nil
	}
	return c.enc.EncodeAll(raw, make([]byte, 0, len(raw)/4)), nil
}

func (c *Codec) unmarshal(data []byte, v any) error {
	if IsCompressed(data) {
		raw, err := c.dec.DecodeAll(data, nil)
		if err != nil {
			return fmt.Errorf("snapshot: cannot decompress: %w", err)
		}
		data = raw
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("snapshot: cannot decode: %w", err)
	}
	return nil
}
