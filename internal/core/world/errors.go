package world

import "errors"

// ErrUnknownKind is returned by Create when the kind name is not registered
// with the world's KindResolver.
var ErrUnknownKind = errors.New("unknown kind")
