package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishQueuesEvent(t *testing.T) {
	hub := NewHub()

	hub.Publish("job_updated", map[string]int{"job_id": 12})

	require.Len(t, hub.broadcast, 1)
	event := <-hub.broadcast
	assert.Equal(t, "job_updated", event.Kind)
}

func TestPublishNeverBlocksWhenFull(t *testing.T) {
	hub := NewHub()

	// Fill the buffer past capacity with nobody draining. The surplus
	// events are dropped, but Publish must return every time.
	for i := 0; i < cap(hub.broadcast)+10; i++ {
		hub.Publish("requisition_updated", i)
	}

	assert.Len(t, hub.broadcast, cap(hub.broadcast))
}
