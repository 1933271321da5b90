package events

import (
	"testing"

	"shiftwatch/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishDeliversToChannel(t *testing.T) {
	bus := New(nil, config.Config{})

	var received []Event
	bus.Subscribe(ChannelSuggestions, func(e Event) { received = append(received, e) })
	bus.Subscribe(ChannelRoster, func(e Event) { t.Fatalf("unexpected event on roster: %v", e) })

	err := bus.Publish(ChannelSuggestions, Event{
		Type: TypeSuggestionsGenerated,
		Data: map[string]any{"count": 3},
	})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, ChannelSuggestions, received[0].Channel)
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].Timestamp.IsZero())
	assert.Equal(t, 3, received[0].Data["count"])
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := New(nil, config.Config{})

	calls := 0
	unsubscribe := bus.Subscribe(ChannelRoster, func(Event) { calls++ })

	require.NoError(t, bus.Publish(ChannelRoster, Event{Type: TypeScheduleUpdated}))
	unsubscribe()
	require.NoError(t, bus.Publish(ChannelRoster, Event{Type: TypeScheduleUpdated}))

	assert.Equal(t, 1, calls)
}

func TestEventBus_PublishAfterClose(t *testing.T) {
	bus := New(nil, config.Config{})
	require.NoError(t, bus.Close())

	err := bus.Publish(ChannelRoster, Event{Type: TypeScheduleUpdated})
	assert.Error(t, err)
}
