package bsonuuid

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Size is the length in bytes of every encoded UUID.
const Size = 16

// UUID is a 128-bit identifier held in canonical (network) byte order, the same order as its
// textual form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx. A UUID carries no byte order of its own;
// a Representation decides how it is laid out when serialized.
//
// A uuid.UUID from github.com/google/uuid converts with a plain type conversion.
type UUID [Size]byte

// Nil is the nil UUID (all zeros)
var Nil UUID

// FromBits builds a UUID from its most significant and least significant 64 bits.
func FromBits(msb, lsb uint64) UUID {
	var u UUID
	binary.BigEndian.PutUint64(u[0:8], msb)
	binary.BigEndian.PutUint64(u[8:16], lsb)
	return u
}

// Bits returns the most significant and least significant 64 bits of the UUID.
func (u UUID) Bits() (msb, lsb uint64) {
	return binary.BigEndian.Uint64(u[0:8]), binary.BigEndian.Uint64(u[8:16])
}

// String returns the canonical string representation of the UUID
func (u UUID) String() string {
	return uuid.UUID(u).String()
}

// Bytes returns a copy of the UUID in canonical byte order
func (u UUID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, u[:])
	return b
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface using the Standard layout
func (u UUID) MarshalBinary() ([]byte, error) {
	return Standard.Encode(u), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface using the Standard layout
func (u *UUID) UnmarshalBinary(data []byte) error {
	id, err := Standard.Decode(data)
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// Scan implements the sql.Scanner interface. Only NULL and 16-byte values in the Standard
// layout are accepted; legacy columns should be scanned as []byte and decoded explicitly
// with the Representation that wrote them.
func (u *UUID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		*u = Nil
		return nil
	case []byte:
		return u.UnmarshalBinary(src)
	default:
		return fmt.Errorf("bsonuuid: cannot scan type %T into UUID", src)
	}
}

// Value implements the driver.Valuer interface, storing the Standard 16-byte layout
func (u UUID) Value() (driver.Value, error) {
	return Standard.Encode(u), nil
}

// Compare returns an integer comparing two UUIDs by their canonical bytes.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
func (u UUID) Compare(other UUID) int {
	return bytes.Compare(u[:], other[:])
}

// Equal returns true if u and other represent the same UUID
func (u UUID) Equal(other UUID) bool {
	return u == other
}
