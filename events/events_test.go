package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInOrder(t *testing.T) {
	b := NewBus(4)
	b.Publish(GameEvent{Kind: SessionStarted, SessionID: "s"})
	b.Publish(GameEvent{Kind: ColumnChosen, SessionID: "s"})
	b.Close()

	var kinds []Kind
	for e := range b.Events() {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []Kind{SessionStarted, ColumnChosen}, kinds)
}

func TestBus_DropsWhenFull(t *testing.T) {
	b := NewBus(1)
	b.Publish(GameEvent{Kind: SessionStarted})
	b.Publish(GameEvent{Kind: ColumnChosen})

	e := <-b.Events()
	assert.Equal(t, SessionStarted, e.Kind)
	select {
	case e := <-b.Events():
		t.Fatalf("unexpected event %v", e.Kind)
	default:
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	b := NewBus(0)
	b.Close()
	b.Close()
	require.NotPanics(t, func() { b.Publish(GameEvent{Kind: SessionReset}) })

	_, ok := <-b.Events()
	assert.False(t, ok)
}
