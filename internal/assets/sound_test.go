package assets

import (
	"encoding/binary"
	"testing"

	"nexusstrike/internal/sfx"
)

func TestRenderStereoPCM(t *testing.T) {
	for _, s := range sfx.All {
		buf := Render(s, 44100)
		samples := sfx.Samples(s, 44100)
		if len(buf) != len(samples)*4 {
			t.Fatalf("sound %d: %d bytes for %d samples", s, len(buf), len(samples))
		}
		for i := 0; i < len(buf); i += 4 {
			l := int16(binary.LittleEndian.Uint16(buf[i:]))
			r := int16(binary.LittleEndian.Uint16(buf[i+2:]))
			if l != r {
				t.Fatalf("sound %d frame %d: left %d right %d", s, i/4, l, r)
			}
			if want := int16(samples[i/4] * 32767); l != want {
				t.Fatalf("sound %d frame %d = %d, want %d", s, i/4, l, want)
			}
		}
	}
}

func TestRenderUnknown(t *testing.T) {
	if buf := Render(sfx.Sound(99), 44100); buf != nil {
		t.Errorf("Render(unknown) = %d bytes, want nil", len(buf))
	}
}
