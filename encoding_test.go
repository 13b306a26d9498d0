package bsonuuid

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/google/uuid"
)

var vectorUUID = UUID(uuid.MustParse("01020304-0506-0708-090a-0b0c0d0e0f10"))

func TestRepresentation_EncodeVectors(t *testing.T) {
	tests := []struct {
		rep  Representation
		want []byte
	}{
		{Standard, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}},
		{JavaLegacy, []byte{8, 7, 6, 5, 4, 3, 2, 1, 16, 15, 14, 13, 12, 11, 10, 9}},
		{PythonLegacy, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}},
		{CSharpLegacy, []byte{4, 3, 2, 1, 6, 5, 8, 7, 9, 10, 11, 12, 13, 14, 15, 16}},
	}

	for _, tt := range tests {
		t.Run(tt.rep.String(), func(t *testing.T) {
			got := tt.rep.Encode(vectorUUID)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = %v, want %v", got, tt.want)
			}

			decoded, err := tt.rep.Decode(tt.want)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if decoded != vectorUUID {
				t.Errorf("Decode() = %v, want %v", decoded, vectorUUID)
			}
		})
	}
}

func TestRepresentation_CSharpLegacyBitPlacement(t *testing.T) {
	// Each byte of the high half carries its own index, so the encoded order exposes the permutation.
	id := FromBits(0x0706050403020100, 0)
	got := CSharpLegacy.Encode(id)
	want := []byte{4, 5, 6, 7, 2, 3, 0, 1}
	if !bytes.Equal(got[:8], want) {
		t.Errorf("Encode()[:8] = %v, want %v", got[:8], want)
	}
}

func TestRepresentation_RoundTripBoundaries(t *testing.T) {
	values := []UUID{
		Nil,
		FromBits(^uint64(0), ^uint64(0)),
		FromBits(0xaaaaaaaaaaaaaaaa, 0x5555555555555555),
		FromBits(0x5555555555555555, 0xaaaaaaaaaaaaaaaa),
		FromBits(1, 0),
		FromBits(0, 1),
		FromBits(1<<63, 1<<63),
		vectorUUID,
	}

	for _, rep := range Representations() {
		for _, u := range values {
			got, err := rep.Decode(rep.Encode(u))
			if err != nil {
				t.Fatalf("%v: Decode() error = %v", rep, err)
			}
			if got != u {
				t.Errorf("%v: round trip of %v = %v", rep, u, got)
			}
		}
	}
}

func TestRepresentation_RoundTripRandom(t *testing.T) {
	for _, rep := range Representations() {
		rep := rep
		f := func(msb, lsb uint64) bool {
			u := FromBits(msb, lsb)
			b := rep.Encode(u)
			if len(b) != Size {
				return false
			}
			got, err := rep.Decode(b)
			return err == nil && got == u
		}
		cfg := &quick.Config{MaxCount: 2000, Rand: rand.New(rand.NewSource(int64(rep) + 1))}
		if err := quick.Check(f, cfg); err != nil {
			t.Errorf("%v: %v", rep, err)
		}
	}
}

func TestRepresentation_Distinct(t *testing.T) {
	standard := Standard.Encode(vectorUUID)
	java := JavaLegacy.Encode(vectorUUID)
	csharp := CSharpLegacy.Encode(vectorUUID)
	python := PythonLegacy.Encode(vectorUUID)

	if bytes.Equal(standard, java) {
		t.Error("Standard and JavaLegacy produced the same bytes")
	}
	if bytes.Equal(standard, csharp) {
		t.Error("Standard and CSharpLegacy produced the same bytes")
	}
	if bytes.Equal(java, csharp) {
		t.Error("JavaLegacy and CSharpLegacy produced the same bytes")
	}
	if !bytes.Equal(python, standard) {
		t.Errorf("PythonLegacy = %v, want Standard bytes %v", python, standard)
	}
}

func TestRepresentation_Decode_InvalidLength(t *testing.T) {
	inputs := map[string][]byte{
		"nil":      nil,
		"15 bytes": make([]byte, 15),
		"17 bytes": make([]byte, 17),
	}

	for _, rep := range Representations() {
		for name, input := range inputs {
			_, err := rep.Decode(input)
			if !errors.Is(err, ErrInvalidLength) {
				t.Errorf("%v: Decode(%s) error = %v, want ErrInvalidLength", rep, name, err)
			}
		}
	}
}

func TestRepresentation_Decode_Unknown(t *testing.T) {
	_, err := Representation(9).Decode(make([]byte, Size))
	if !errors.Is(err, ErrUnknownRepresentation) {
		t.Errorf("Decode() error = %v, want ErrUnknownRepresentation", err)
	}
}

func TestRepresentation_Encode_UnknownPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Encode() on an unknown representation should panic")
		}
	}()
	Representation(9).Encode(vectorUUID)
}

func TestRepresentation_AppendEncode(t *testing.T) {
	prefix := []byte{0xff, 0xee}
	got := JavaLegacy.AppendEncode(prefix, vectorUUID)
	if len(got) != len(prefix)+Size {
		t.Fatalf("AppendEncode() length = %d, want %d", len(got), len(prefix)+Size)
	}
	if !bytes.Equal(got[:2], prefix) {
		t.Errorf("AppendEncode() clobbered prefix: %v", got[:2])
	}
	if !bytes.Equal(got[2:], JavaLegacy.Encode(vectorUUID)) {
		t.Errorf("AppendEncode() payload = %v", got[2:])
	}
}

func TestConvert(t *testing.T) {
	java := JavaLegacy.Encode(vectorUUID)

	got, err := Convert(java, JavaLegacy, CSharpLegacy)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if want := CSharpLegacy.Encode(vectorUUID); !bytes.Equal(got, want) {
		t.Errorf("Convert() = %v, want %v", got, want)
	}

	if _, err := Convert(java[:10], JavaLegacy, Standard); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Convert() short input error = %v, want ErrInvalidLength", err)
	}
	if _, err := Convert(java, JavaLegacy, Representation(7)); !errors.Is(err, ErrUnknownRepresentation) {
		t.Errorf("Convert() bad target error = %v, want ErrUnknownRepresentation", err)
	}
}

func FuzzRepresentation_Decode(f *testing.F) {
	f.Add(Standard.Encode(vectorUUID))
	f.Add(make([]byte, 15))
	f.Add(make([]byte, 17))

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, rep := range Representations() {
			u, err := rep.Decode(data)
			if len(data) != Size {
				if !errors.Is(err, ErrInvalidLength) {
					t.Fatalf("%v: Decode(len %d) error = %v", rep, len(data), err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("%v: Decode() error = %v", rep, err)
			}
			if got := rep.Encode(u); !bytes.Equal(got, data) {
				t.Fatalf("%v: Encode(Decode(%x)) = %x", rep, data, got)
			}
		}
	})
}
