package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPairKeyForIsOrderIndependent(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.Equal(t, PairKeyFor(a, b), PairKeyFor(b, a))
	assert.NotEqual(t, PairKeyFor(a, b), PairKeyFor(a, uuid.New()))
}

func TestCanonicalPairOrdersByString(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	first, second := CanonicalPair(b, a)
	assert.Equal(t, a, first)
	assert.Equal(t, b, second)

	first, second = CanonicalPair(a, b)
	assert.Equal(t, a, first)
	assert.Equal(t, b, second)
}

func TestOtherParticipant(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	room := ChatRoom{Id: uuid.New(), ParticipantA: a, ParticipantB: b}

	assert.Equal(t, b, room.OtherParticipant(a))
	assert.Equal(t, a, room.OtherParticipant(b))
	assert.Equal(t, uuid.Nil, room.OtherParticipant(uuid.New()))

	malformed := ChatRoom{Id: uuid.New(), ParticipantA: a, ParticipantB: a}
	assert.Equal(t, uuid.Nil, malformed.OtherParticipant(a))
}

func TestHasParticipant(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	room := ChatRoom{ParticipantA: a, ParticipantB: b}

	assert.True(t, room.HasParticipant(a))
	assert.True(t, room.HasParticipant(b))
	assert.False(t, room.HasParticipant(uuid.New()))
}
