package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSourceRecord marks an extracted entry missing a required field
	ErrMalformedSourceRecord = errors.New("malformed source record")

	// ErrUnknownGameReference marks an entry that references a game outside the configured order
	ErrUnknownGameReference = errors.New("unknown game reference")
)

// MalformedSourceRecordError reports a raw entry that cannot be aggregated
type MalformedSourceRecordError struct {
	Game   string // Game bucket being processed
	Index  int    // Position of the entry within the bucket
	Field  string // Missing or inconsistent field
	Detail string
}

func (e *MalformedSourceRecordError) Error() string {
	msg := fmt.Sprintf("%s: game %q entry %d: field %q", ErrMalformedSourceRecord, e.Game, e.Index, e.Field)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *MalformedSourceRecordError) Unwrap() error {
	return ErrMalformedSourceRecord
}

// UnknownGameReferenceError reports a game slug missing from the configured order
type UnknownGameReferenceError struct {
	Game string
}

func (e *UnknownGameReferenceError) Error() string {
	return fmt.Sprintf("%s: %q is not in the configured game order", ErrUnknownGameReference, e.Game)
}

func (e *UnknownGameReferenceError) Unwrap() error {
	return ErrUnknownGameReference
}
