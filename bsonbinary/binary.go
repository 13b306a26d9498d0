// Package bsonbinary stores bsonuuid.UUID values in BSON binary fields using the
// go.mongodb.org/mongo-driver bson packages.
package bsonbinary

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Lzww0608/bsonuuid"
)

var (
	// ErrAmbiguousLegacy is returned when a subtype 3 value is read but the caller asked for
	// Standard, so there is no way to tell which legacy layout wrote it.
	ErrAmbiguousLegacy = errors.New("bsonbinary: subtype 3 UUID needs a legacy representation")

	// ErrUnsupportedSubtype is returned for binary values that are not UUID subtypes.
	ErrUnsupportedSubtype = errors.New("bsonbinary: binary subtype is not a UUID subtype")
)

// ToBinary returns u laid out under r, tagged with r's subtype.
func ToBinary(u bsonuuid.UUID, r bsonuuid.Representation) primitive.Binary {
	return primitive.Binary{Subtype: r.Subtype(), Data: r.Encode(u)}
}

// FromBinary reads a UUID back out of b. Subtype 4 is always decoded as Standard. Subtype 3
// is decoded with legacy, which must name the legacy layout the writer used.
func FromBinary(b primitive.Binary, legacy bsonuuid.Representation) (bsonuuid.UUID, error) {
	var rep bsonuuid.Representation
	switch b.Subtype {
	case bsontype.BinaryUUID:
		rep = bsonuuid.Standard
	case bsontype.BinaryUUIDOld:
		if legacy == bsonuuid.Standard {
			return bsonuuid.Nil, ErrAmbiguousLegacy
		}
		rep = legacy
	default:
		return bsonuuid.Nil, errors.Wrapf(ErrUnsupportedSubtype, "subtype 0x%02x", b.Subtype)
	}

	u, err := rep.Decode(b.Data)
	if err != nil {
		return bsonuuid.Nil, errors.Wrapf(err, "decoding %s UUID", rep)
	}
	return u, nil
}
