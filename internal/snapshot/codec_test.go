package snapshot

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/vovakirdan/shared-garden/internal/garden"
)

func newGame(t *testing.T) *garden.Game {
	t.Helper()
	s := garden.DefaultSettings()
	s.Seed = 3
	g, err := garden.New([]string{"ann", "bob"}, s)
	if err != nil {
		t.Fatalf("garden.New: %v", err)
	}
	return g
}

func newCodec(t *testing.T, compress bool) *Codec {
	t.Helper()
	c, err := NewCodec(compress)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestFrameRoundTrip(t *testing.T) {
	g := newGame(t)

	for _, compress := range []bool{false, true} {
		name := "json"
		if compress {
			name = "zstd"
		}
		t.Run(name, func(t *testing.T) {
			c := newCodec(t, compress)
			in := Frame{Type: FrameUpdate, Seq: 4, State: g.Snapshot()}

			data, err := c.EncodeFrame(in)
			if err != nil {
				t.Fatalf("EncodeFrame: %v", err)
			}
			if IsCompressed(data) != compress {
				t.Errorf("IsCompressed = %v, expected %v", IsCompressed(data), compress)
			}

			out, err := c.DecodeFrame(data)
			if err != nil {
				t.Fatalf("DecodeFrame: %v", err)
			}
			if out.Type != in.Type || out.Seq != in.Seq {
				t.Errorf("frame header = %s/%d, expected %s/%d", out.Type, out.Seq, in.Type, in.Seq)
			}

			restored, err := garden.Restore(out.State)
			if err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if !reflect.DeepEqual(restored.LegalMoves("ann"), g.LegalMoves("ann")) {
				t.Error("legal moves changed across the codec")
			}
		})
	}
}

func TestDecodeAcceptsEitherEncoding(t *testing.T) {
	g := newGame(t)
	plain := newCodec(t, false)
	packed := newCodec(t, true)

	data, err := packed.EncodeState(g.Snapshot(), true)
	if err != nil {
		t.Fatalf("EncodeState: %v", err)
	}
	s, err := plain.DecodeState(data)
	if err != nil {
		t.Fatalf("DecodeState: %v", err)
	}
	if s.CurrentPlayer != "ann" {
		t.Errorf("current player = %q, expected ann", s.CurrentPlayer)
	}
}

func TestCompressionShrinksSnapshots(t *testing.T) {
	g := newGame(t)
	c := newCodec(t, false)

	raw, err := c.EncodeState(g.Snapshot(), false)
	if err != nil {
		t.Fatalf("EncodeState: %v", err)
	}
	packed, err := c.EncodeState(g.Snapshot(), true)
	if err != nil {
		t.Fatalf("EncodeState: %v", err)
	}
	if len(packed) >= len(raw) {
		t.Errorf("compressed %d bytes, raw %d bytes", len(packed), len(raw))
	}
	if bytes.HasPrefix(raw, zstdMagic) {
		t.Error("raw JSON should not look compressed")
	}
}

func TestDecodeErrors(t *testing.T) {
	c := newCodec(t, false)

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("not json")},
		{"truncated zstd", append(append([]byte(nil), zstdMagic...), 0x00, 0x01)},
		{"frame without state", []byte(`{"type":"update","seq":1}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := c.DecodeFrame(tc.data); err == nil {
				t.Error("expected decode error")
			}
		})
	}
}
