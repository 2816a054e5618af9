package audio

import (
	"encoding/binary"
	"math"
)

// Level computes the normalized RMS level of one linear16 little-endian
// frame, in [0, 1]. Odd trailing bytes and empty frames yield 0.
func Level(frame []byte) float64 {
	sampleCount := len(frame) / 2
	if sampleCount == 0 {
		return 0
	}

	var sumSquares float64
	for i := 0; i < sampleCount*2; i += 2 {
		sample := int16(binary.LittleEndian.Uint16(frame[i : i+2]))
		// 32768 rather than MaxInt16, so the most negative sample still
		// normalizes inside [-1, 1].
		normalized := float64(sample) / 32768
		sumSquares += normalized * normalized
	}

	return math.Sqrt(sumSquares / float64(sampleCount))
}
