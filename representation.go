package bsonuuid

import (
	"fmt"
	"strings"
)

// Representation is one of the byte layouts MongoDB drivers have used to store a UUID in a
// BSON binary field. The set is closed; every value must stay readable forever, so none of
// them is preferred over the others.
type Representation uint8

const (
	// Standard stores both halves big-endian (network byte order) under subtype 4.
	Standard Representation = iota

	// JavaLegacy is the layout written by older Java drivers: each 64-bit half little-endian.
	JavaLegacy

	// PythonLegacy is the layout written by older Python drivers. Its bytes are identical to
	// Standard; only the subtype differs.
	PythonLegacy

	// CSharpLegacy is the layout written by older C# drivers, which serialized System.Guid:
	// the high half is stored as a little-endian uint32 followed by two little-endian uint16,
	// the low half big-endian.
	CSharpLegacy
)

// BSON binary subtypes attached to encoded UUIDs.
const (
	SubtypeUUIDLegacy byte = 0x03
	SubtypeUUID       byte = 0x04
)

var representationNames = [...]string{
	Standard:     "standard",
	JavaLegacy:   "javaLegacy",
	PythonLegacy: "pythonLegacy",
	CSharpLegacy: "csharpLegacy",
}

// Representations returns every defined Representation in declaration order.
func Representations() []Representation {
	return []Representation{Standard, JavaLegacy, PythonLegacy, CSharpLegacy}
}

// Valid reports whether r is one of the defined representations.
func (r Representation) Valid() bool {
	return int(r) < len(representationNames)
}

// Subtype returns the BSON binary subtype for values written with r. The three legacy
// layouts share subtype 3 and cannot be told apart by it.
func (r Representation) Subtype() byte {
	if r == Standard {
		return SubtypeUUID
	}
	return SubtypeUUIDLegacy
}

// String returns the name used for r in MongoDB connection strings (uuidRepresentation=...).
func (r Representation) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Representation(%d)", uint8(r))
	}
	return representationNames[r]
}

// ParseRepresentation returns the Representation named s, ignoring case.
func ParseRepresentation(s string) (Representation, error) {
	for i, name := range representationNames {
		if strings.EqualFold(s, name) {
			return Representation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRepresentation, s)
}

// MarshalText implements the encoding.TextMarshaler interface
func (r Representation) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRepresentation, uint8(r))
	}
	return []byte(representationNames[r]), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (r *Representation) UnmarshalText(data []byte) error {
	rep, err := ParseRepresentation(string(data))
	if err != nil {
		return err
	}
	*r = rep
	return nil
}
