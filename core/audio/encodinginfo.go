package audio

const (
	DefaultSampleRate = 16000
	DefaultFormat     = EncodingLinear16
)

// GetDefaultEncodingInfo returns the encoding the capture sources produce
// when not configured otherwise: 16kHz mono linear16.
func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: DefaultFormat}
}

// EncodingInfo describes the raw audio format flowing through a session.
type EncodingInfo struct {
	SampleRate int
	Format     EncodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

// SilenceValue returns the byte value representing digital silence for the
// encoding.
func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	case EncodingLinear16:
		return 0
	}

	return 0
}

// BytesPerFrame returns the payload size of one frame of the given duration
// in milliseconds, or -1 for unknown formats.
func (e EncodingInfo) BytesPerFrame(durationMs int) int {
	byteSize := e.Format.ByteSize()
	if byteSize < 0 {
		return -1
	}
	return e.SampleRate * byteSize * durationMs / 1000
}

type EncodingFormat string

func (e EncodingFormat) Name() string {
	return string(e)
}

func (e EncodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}

const (
	EncodingMulaw    EncodingFormat = "mulaw"
	EncodingALaw     EncodingFormat = "alaw"
	EncodingLinear16 EncodingFormat = "linear16"
)
