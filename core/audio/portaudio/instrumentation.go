//go:build cgo

package portaudio

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/nebulavoice/translate-core/core/audio/portaudio"

var logger = otelslog.NewLogger(scopeName)
