// Package bsonuuid converts UUIDs to and from the 16-byte layouts that MongoDB drivers have
// written into BSON binary fields over the years.
//
// Before BSON binary subtype 4 was defined, each driver picked its own byte order for UUIDs
// stored under subtype 3. Data written that way is still around, so reading it back needs the
// exact layout of the driver that wrote it:
//   - Standard: network byte order, subtype 4
//   - JavaLegacy: each 64-bit half little-endian, subtype 3
//   - PythonLegacy: network byte order, subtype 3
//   - CSharpLegacy: System.Guid layout for the high half, network order for the low half, subtype 3
//
// Subtype 3 alone does not say which legacy layout was used; the caller has to know.
//
// Basic Usage:
//
//	id := bsonuuid.FromBits(0x0102030405060708, 0x090a0b0c0d0e0f10)
//
//	data := bsonuuid.Standard.Encode(id)   // 01 02 03 ... 10
//	subtype := bsonuuid.Standard.Subtype() // 0x04
//
//	legacy := bsonuuid.JavaLegacy.Encode(id) // 08 07 ... 01 10 0f ... 09
//	back, err := bsonuuid.JavaLegacy.Decode(legacy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Default Representation:
//
// Default returns a process-wide Representation for call sites that do not pass one. It starts
// as JavaLegacy, matching what the Java driver historically wrote, and can be changed with
// SetDefault. Passing the Representation explicitly is preferred.
//
// Thread Safety:
//
// Encode, Decode and Convert are pure functions. Default and SetDefault use an atomic word and
// may be called from any goroutine.
package bsonuuid
