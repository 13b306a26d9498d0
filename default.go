package bsonuuid

import (
	"fmt"
	"sync/atomic"
)

// defaultRepresentation holds the process-wide default. It starts as JavaLegacy, the layout
// the Java driver wrote before subtype 4 existed; code that relies on it without saying so
// will keep writing legacy bytes.
var defaultRepresentation atomic.Uint32

func init() {
	defaultRepresentation.Store(uint32(JavaLegacy))
}

// Default returns the process-wide default Representation.
// Prefer passing a Representation explicitly; Default exists for callers that omit one.
func Default() Representation {
	return Representation(defaultRepresentation.Load())
}

// SetDefault replaces the process-wide default Representation.
// It is safe for concurrent use and panics if r is not a defined Representation.
func SetDefault(r Representation) {
	if !r.Valid() {
		panic(fmt.Sprintf("bsonuuid: SetDefault called with %v", r))
	}
	defaultRepresentation.Store(uint32(r))
}
