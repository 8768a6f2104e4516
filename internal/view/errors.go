package view

import "errors"

// ErrUnboundSection is returned when a section has neither a handler nor a
// URL fallback.
var ErrUnboundSection = errors.New("section not bound")
