package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMarkDeletedForIsIdempotent(t *testing.T) {
	viewer := uuid.New()
	msg := Message{Id: uuid.New()}

	assert.False(t, msg.IsDeletedFor(viewer))
	assert.True(t, msg.MarkDeletedFor(viewer))
	assert.True(t, msg.IsDeletedFor(viewer))

	assert.False(t, msg.MarkDeletedFor(viewer))
	assert.Len(t, msg.DeletedBy, 1)
}

func TestDeletedByIsPerViewer(t *testing.T) {
	viewerA := uuid.New()
	viewerB := uuid.New()
	msg := Message{Id: uuid.New()}

	msg.MarkDeletedFor(viewerA)

	assert.True(t, msg.IsDeletedFor(viewerA))
	assert.False(t, msg.IsDeletedFor(viewerB))
}
