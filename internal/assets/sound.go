package assets

import "nexusstrike/internal/sfx"

// Render encodes the clip as 16-bit little-endian stereo PCM, the layout ebiten's audio
// players expect.
func Render(s sfx.Sound, sampleRate int) []byte {
	samples := sfx.Samples(s, sampleRate)
	if samples == nil {
		return nil
	}
	buf := make([]byte, len(samples)*4)
	for i, v := range samples {
		s16 := int16(v * 32767)
		buf[i*4] = byte(s16)
		buf[i*4+1] = byte(s16 >> 8)
		buf[i*4+2] = byte(s16)
		buf[i*4+3] = byte(s16 >> 8)
	}
	return buf
}
