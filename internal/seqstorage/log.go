package seqstorage

import "github.com/rs/zerolog"

var logger = zerolog.Nop()

// SetLogger sets the logger used to report generalizations and the lifecycle of native buffers.
func SetLogger(l zerolog.Logger) {
	logger = l
}
