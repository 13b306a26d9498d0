package bsonbinary

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Lzww0608/bsonuuid"
)

var tUUID = reflect.TypeOf(bsonuuid.UUID{})

// Codec is a bsoncodec.ValueEncoder and bsoncodec.ValueDecoder for bsonuuid.UUID.
// When decoding, its representation names the layout of subtype 3 values.
type Codec struct {
	rep           bsonuuid.Representation
	followDefault bool
}

var (
	_ bsoncodec.ValueEncoder = (*Codec)(nil)
	_ bsoncodec.ValueDecoder = (*Codec)(nil)
)

// NewCodec returns a Codec that always uses r. It panics if r is not a defined Representation.
func NewCodec(r bsonuuid.Representation) *Codec {
	if !r.Valid() {
		panic(fmt.Sprintf("bsonbinary: NewCodec called with %v", r))
	}
	return &Codec{rep: r}
}

// NewDefaultCodec returns a Codec that reads bsonuuid.Default on every call, so later
// SetDefault calls take effect.
func NewDefaultCodec() *Codec {
	return &Codec{followDefault: true}
}

// Representation returns the representation the codec will use for its next call.
func (c *Codec) Representation() bsonuuid.Representation {
	if c.followDefault {
		return bsonuuid.Default()
	}
	return c.rep
}

// EncodeValue writes a bsonuuid.UUID as a BSON binary value.
func (c *Codec) EncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tUUID {
		return bsoncodec.ValueEncoderError{Name: "UUIDEncodeValue", Types: []reflect.Type{tUUID}, Received: val}
	}

	b := ToBinary(val.Interface().(bsonuuid.UUID), c.Representation())
	return vw.WriteBinaryWithSubtype(b.Data, b.Subtype)
}

// DecodeValue reads a BSON binary, null or undefined value into a bsonuuid.UUID.
func (c *Codec) DecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tUUID {
		return bsoncodec.ValueDecoderError{Name: "UUIDDecodeValue", Types: []reflect.Type{tUUID}, Received: val}
	}

	var u bsonuuid.UUID
	switch vrType := vr.Type(); vrType {
	case bsontype.Binary:
		data, subtype, err := vr.ReadBinary()
		if err != nil {
			return err
		}
		u, err = FromBinary(primitive.Binary{Subtype: subtype, Data: data}, c.Representation())
		if err != nil {
			return err
		}
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
	case bsontype.Undefined:
		if err := vr.ReadUndefined(); err != nil {
			return err
		}
	default:
		return errors.Errorf("cannot decode %v into a bsonuuid.UUID", vrType)
	}

	val.Set(reflect.ValueOf(u))
	return nil
}

// Register installs c as the encoder and decoder for bsonuuid.UUID in reg.
func Register(reg *bsoncodec.Registry, c *Codec) {
	reg.RegisterTypeEncoder(tUUID, c)
	reg.RegisterTypeDecoder(tUUID, c)
}

// NewRegistry returns the driver's default registry with c registered for bsonuuid.UUID.
func NewRegistry(c *Codec) *bsoncodec.Registry {
	reg := bson.NewRegistry()
	Register(reg, c)
	return reg
}
