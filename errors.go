package bsonuuid

import "errors"

var (
	// ErrInvalidLength indicates that a byte slice handed to Decode is not 16 bytes long
	ErrInvalidLength = errors.New("bsonuuid: invalid UUID length (expected 16 bytes)")

	// ErrUnknownRepresentation indicates a Representation outside the four defined constants
	ErrUnknownRepresentation = errors.New("bsonuuid: unknown UUID representation")
)
