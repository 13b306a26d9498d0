package bsonuuid

import (
	"encoding/binary"
	"fmt"
)

// Encode returns the 16-byte layout of u under r.
// It panics if r is not a defined Representation.
func (r Representation) Encode(u UUID) []byte {
	return r.AppendEncode(make([]byte, 0, Size), u)
}

// AppendEncode appends the 16-byte layout of u under r to dst and returns the extended slice.
// It panics if r is not a defined Representation.
func (r Representation) AppendEncode(dst []byte, u UUID) []byte {
	msb, lsb := u.Bits()
	switch r {
	case Standard, PythonLegacy:
		dst = binary.BigEndian.AppendUint64(dst, msb)
		return binary.BigEndian.AppendUint64(dst, lsb)
	case JavaLegacy:
		dst = binary.LittleEndian.AppendUint64(dst, msb)
		return binary.LittleEndian.AppendUint64(dst, lsb)
	case CSharpLegacy:
		dst = appendGuidHigh(dst, msb)
		return binary.BigEndian.AppendUint64(dst, lsb)
	default:
		panic(fmt.Sprintf("bsonuuid: Encode called on %v", r))
	}
}

// Decode rebuilds a UUID from its 16-byte layout under r.
func (r Representation) Decode(b []byte) (UUID, error) {
	if !r.Valid() {
		return Nil, fmt.Errorf("%w: %d", ErrUnknownRepresentation, uint8(r))
	}
	if len(b) != Size {
		return Nil, fmt.Errorf("%w: got %d", ErrInvalidLength, len(b))
	}

	var msb, lsb uint64
	switch r {
	case Standard, PythonLegacy:
		msb = binary.BigEndian.Uint64(b[0:8])
		lsb = binary.BigEndian.Uint64(b[8:16])
	case JavaLegacy:
		msb = binary.LittleEndian.Uint64(b[0:8])
		lsb = binary.LittleEndian.Uint64(b[8:16])
	case CSharpLegacy:
		msb = guidHigh(b[0:8])
		lsb = binary.BigEndian.Uint64(b[8:16])
	}
	return FromBits(msb, lsb), nil
}

// Convert re-encodes b, written under from, into the layout of to.
func Convert(b []byte, from, to Representation) ([]byte, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRepresentation, uint8(to))
	}
	u, err := from.Decode(b)
	if err != nil {
		return nil, err
	}
	return to.Encode(u), nil
}

// appendGuidHigh writes msb the way System.Guid stores Data1, Data2 and Data3:
// bits 32-63 as a little-endian uint32, then bits 16-31 and bits 0-15 as little-endian uint16.
func appendGuidHigh(dst []byte, msb uint64) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(msb>>32))
	dst = binary.LittleEndian.AppendUint16(dst, uint16(msb>>16))
	return binary.LittleEndian.AppendUint16(dst, uint16(msb))
}

func guidHigh(b []byte) uint64 {
	return uint64(binary.LittleEndian.Uint32(b[0:4]))<<32 |
		uint64(binary.LittleEndian.Uint16(b[4:6]))<<16 |
		uint64(binary.LittleEndian.Uint16(b[6:8]))
}
