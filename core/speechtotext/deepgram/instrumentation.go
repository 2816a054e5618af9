package deepgram

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/nebulavoice/translate-core/core/speechtotext/deepgram"

var logger = otelslog.NewLogger(scopeName)
