package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom is a durable messaging context between exactly two users.
// ParticipantA/ParticipantB are stored in canonical order (A < B by string
// comparison) so that one unordered pair always maps to one PairKey.
type ChatRoom struct {
	Id                 uuid.UUID
	ParticipantA       uuid.UUID
	ParticipantB       uuid.UUID
	PairKey            string
	LastMessagePreview string
	LastActivityAt     time.Time
	CreatedAt          time.Time
}

// HasParticipant reports whether userId is one of the two participants.
func (r *ChatRoom) HasParticipant(userId uuid.UUID) bool {
	return r.ParticipantA == userId || r.ParticipantB == userId
}

// OtherParticipant returns the participant that is not userId.
// Returns uuid.Nil when the room is malformed (userId on both sides or absent).
func (r *ChatRoom) OtherParticipant(userId uuid.UUID) uuid.UUID {
	if r.ParticipantA == userId && r.ParticipantB != userId {
		return r.ParticipantB
	}
	if r.ParticipantB == userId && r.ParticipantA != userId {
		return r.ParticipantA
	}
	return uuid.Nil
}

// PairKeyFor builds the canonical key for an unordered user pair.
func PairKeyFor(a, b uuid.UUID) string {
	if a.String() < b.String() {
		return a.String() + ":" + b.String()
	}
	return b.String() + ":" + a.String()
}

// CanonicalPair orders the pair so the smaller UUID string comes first.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}
