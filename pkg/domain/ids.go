// Package domain holds typed identifiers shared across modules.
//
// IDs are distinct types over uuid.UUID so the compiler rejects passing a
// NoteID where a PhotoID is expected. Parse helpers enforce the invariant
// that IDs are valid, non-nil UUIDs at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "keepsake/pkg/domain-errors"
)

type (
	// UserID identifies an authenticated account.
	UserID uuid.UUID
	// SessionID identifies a login session.
	SessionID uuid.UUID
	// NoteID identifies a note in the feed.
	NoteID uuid.UUID
	// PhotoID identifies a photo record.
	PhotoID uuid.UUID
	// TimerID identifies an elapsed/countdown timer document.
	TimerID uuid.UUID
)

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id NoteID) String() string    { return uuid.UUID(id).String() }
func (id PhotoID) String() string   { return uuid.UUID(id).String() }
func (id TimerID) String() string   { return uuid.UUID(id).String() }

func (id UserID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

func parse(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id must not be nil")
	}
	return u, nil
}

func ParseUserID(raw string) (UserID, error) {
	u, err := parse(raw, "user")
	return UserID(u), err
}

func ParseSessionID(raw string) (SessionID, error) {
	u, err := parse(raw, "session")
	return SessionID(u), err
}

func ParseNoteID(raw string) (NoteID, error) {
	u, err := parse(raw, "note")
	return NoteID(u), err
}

func ParsePhotoID(raw string) (PhotoID, error) {
	u, err := parse(raw, "photo")
	return PhotoID(u), err
}

func ParseTimerID(raw string) (TimerID, error) {
	u, err := parse(raw, "timer")
	return TimerID(u), err
}
