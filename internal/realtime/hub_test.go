package realtime

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFrame(t *testing.T, data []byte) (string, json.RawMessage) {
	t.Helper()
	var frame struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &frame))
	return frame.Type, frame.Data
}

func nextFrame(t *testing.T, sub *Subscriber) []byte {
	t.Helper()
	select {
	case data, ok := <-sub.Events():
		require.True(t, ok, "subscriber channel closed")
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func TestEncodeEnvelope(t *testing.T) {
	data, err := Encode(Buzz{ParticipantID: "u1", Name: "Bob", Order: 1})
	require.NoError(t, err)

	typ, raw := decodeFrame(t, data)
	assert.Equal(t, "buzz", typ)

	var buzz Buzz
	require.NoError(t, json.Unmarshal(raw, &buzz))
	assert.Equal(t, "u1", buzz.ParticipantID)
	assert.Equal(t, 1, buzz.Order)
}

func TestBroadcastReachesEverySubscriber(t *testing.T) {
	h := NewHub()
	a := h.Subscribe("room-1")
	b := h.Subscribe("room-1")
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Broadcast("room-1", StatusChange{Status: "active"})

	for _, sub := range []*Subscriber{a, b} {
		typ, _ := decodeFrame(t, nextFrame(t, sub))
		assert.Equal(t, "status_change", typ)
	}
}

func TestBroadcastStaysInRoom(t *testing.T) {
	h := NewHub()
	a := h.Subscribe("room-1")
	other := h.Subscribe("room-2")
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(other)

	h.Broadcast("room-1", ResetRoom{})

	nextFrame(t, a)
	select {
	case data := <-other.Events():
		t.Fatalf("unexpected frame in other room: %s", data)
	default:
	}
}

func TestBroadcastOrderPreserved(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe("room-1")
	defer h.Unsubscribe(sub)

	h.Broadcast("room-1", StatusChange{Status: "active"})
	h.Broadcast("room-1", Buzz{ParticipantID: "u1", Name: "Bob", Order: 1})
	h.Broadcast("room-1", ResetRoom{})

	want := []string{"status_change", "buzz", "reset_room"}
	for _, expected := range want {
		typ, _ := decodeFrame(t, nextFrame(t, sub))
		assert.Equal(t, expected, typ)
	}
}

func TestLaggingSubscriberDropped(t *testing.T) {
	h := NewHub()
	dead := h.Subscribe("room-1")
	live := h.Subscribe("room-1")

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for data := range live.Events() {
			typ, _ := decodeFrame(t, data)
			mu.Lock()
			got = append(got, typ)
			mu.Unlock()
		}
	}()

	// Never drain dead; its buffer fills and the hub evicts it without
	// stalling delivery to live.
	const n = subscriberBuffer + 8
	for i := 0; i < n; i++ {
		h.Broadcast("room-1", StatusChange{Status: "active"})
	}

	assert.Equal(t, 1, h.Subscribers("room-1"))

	h.Unsubscribe(live)
	<-done
	mu.Lock()
	assert.Len(t, got, n)
	mu.Unlock()

	// The dropped channel still holds its buffered backlog, then closes.
	for i := 0; i < subscriberBuffer; i++ {
		<-dead.Events()
	}
	_, ok := <-dead.Events()
	assert.False(t, ok)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe("room-1")

	h.Unsubscribe(sub)
	assert.NotPanics(t, func() { h.Unsubscribe(sub) })
	assert.Zero(t, h.Subscribers("room-1"))

	// Broadcasting to an emptied room is a no-op.
	assert.NotPanics(t, func() { h.Broadcast("room-1", ResetRoom{}) })
}

func TestSendDeliversToOneSubscriber(t *testing.T) {
	h := NewHub()
	a := h.Subscribe("room-1")
	b := h.Subscribe("room-1")
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Send(a, RoomUpdate{Room: map[string]string{"id": "room-1"}})

	typ, _ := decodeFrame(t, nextFrame(t, a))
	assert.Equal(t, "room_update", typ)
	select {
	case <-b.Events():
		t.Fatal("Send must not fan out")
	default:
	}
}

func TestConcurrentSubscribeBroadcastUnsubscribe(t *testing.T) {
	h := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := h.Subscribe("room-1")
			for j := 0; j < 10; j++ {
				h.Broadcast("room-1", StatusChange{Status: "active"})
			}
			h.Unsubscribe(sub)
		}()
	}
	wg.Wait()

	assert.Zero(t, h.Subscribers("room-1"))
}
