package network

import (
	"io"
	"os"
	"testing"

	"dicedeck-server/pkg/api"
	"dicedeck-server/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "debug", Output: io.Discard})

	os.Exit(m.Run())
}

func TestBroadcaster_BroadcastStampsSession(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")
	require.Equal(t, 2, b.SubscriberCount())

	b.Broadcast(api.ServerResponse{Type: "UPDATE", Seq: 7})

	got := <-a
	assert.Equal(t, "a", got.SessionID)
	assert.Equal(t, 7, got.Seq)
	got = <-c
	assert.Equal(t, "c", got.SessionID)
}

func TestBroadcaster_SendTo(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")

	b.SendTo("a", api.ServerResponse{Seq: 1})
	b.SendTo("ghost", api.ServerResponse{Seq: 2})

	assert.Len(t, a, 1)
	assert.Empty(t, c)
}

func TestBroadcaster_Unregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("a")
	b.Unregister("a")

	_, ok := <-ch
	assert.False(t, ok, "channel must be closed")
	assert.False(t, b.HasSubscriber("a"))

	// Повторное удаление и рассылка без подписчиков не паникуют
	b.Unregister("a")
	b.Broadcast(api.ServerResponse{})
}

func TestBroadcaster_ReRegisterClosesOld(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("a")
	fresh := b.Register("a")

	_, ok := <-old
	assert.False(t, ok)
	assert.Equal(t, 1, b.SubscriberCount())

	b.SendTo("a", api.ServerResponse{Seq: 3})
	assert.Equal(t, 3, (<-fresh).Seq)
}

func TestBroadcaster_FullChannelDrops(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")

	for i := range cap(ch) + 5 {
		b.Broadcast(api.ServerResponse{Seq: i})
	}

	assert.Len(t, ch, cap(ch))
	assert.Equal(t, 0, (<-ch).Seq, "oldest updates are kept")
}
