package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestLevelOfSilenceIsZero(t *testing.T) {
	frame := make([]byte, 320)
	if level := Level(frame); level != 0 {
		t.Fatalf("expected zero level for silence, got %f", level)
	}
}

func TestLevelOfEmptyFrameIsZero(t *testing.T) {
	if level := Level(nil); level != 0 {
		t.Fatalf("expected zero level for empty frame, got %f", level)
	}
	if level := Level([]byte{0x01}); level != 0 {
		t.Fatalf("expected zero level for sub-sample frame, got %f", level)
	}
}

func TestLevelOfFullScaleSquareWaveIsNearOne(t *testing.T) {
	frame := make([]byte, 320)
	for i := 0; i < len(frame); i += 2 {
		binary.LittleEndian.PutUint16(frame[i:i+2], uint16(int16(math.MaxInt16)))
	}

	level := Level(frame)
	if math.Abs(level-1) > 0.001 {
		t.Fatalf("expected full-scale level near 1, got %f", level)
	}
}

func TestLevelNeverExceedsOne(t *testing.T) {
	frame := make([]byte, 320)
	sample := int16(math.MinInt16)
	for i := 0; i < len(frame); i += 2 {
		binary.LittleEndian.PutUint16(frame[i:i+2], uint16(sample))
	}

	if level := Level(frame); level > 1 {
		t.Fatalf("expected level within [0, 1], got %f", level)
	}
}

func TestLevelGrowsWithAmplitude(t *testing.T) {
	quiet := make([]byte, 320)
	loud := make([]byte, 320)
	for i := 0; i < 320; i += 2 {
		binary.LittleEndian.PutUint16(quiet[i:i+2], uint16(int16(1000)))
		binary.LittleEndian.PutUint16(loud[i:i+2], uint16(int16(20000)))
	}

	if Level(quiet) >= Level(loud) {
		t.Fatalf("expected louder frame to meter higher")
	}
}
