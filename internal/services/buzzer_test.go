package services

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MontaQLabs/PolkArena-sub001/internal/realtime"
	"github.com/MontaQLabs/PolkArena-sub001/internal/room"
)

func newBuzzerService() (*BuzzerService, *realtime.Hub) {
	hub := realtime.NewHub()
	return NewBuzzerService(hub), hub
}

func frameType(t *testing.T, sub *realtime.Subscriber) string {
	t.Helper()
	select {
	case data, ok := <-sub.Events():
		require.True(t, ok, "subscriber channel closed")
		var frame struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(data, &frame))
		return frame.Type
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ""
	}
}

func TestBuzzerFullRound(t *testing.T) {
	svc, hub := newBuzzerService()

	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), created.PIN)
	assert.Equal(t, room.StatusWaiting, created.Status)

	_, err = svc.Join(created.PIN, "u1", "Bob")
	require.NoError(t, err)
	snap, err := svc.Join(created.PIN, "u2", "Carol")
	require.NoError(t, err)
	assert.Len(t, snap.Participants, 2)

	sub := hub.Subscribe(created.ID)
	defer hub.Unsubscribe(sub)

	started, err := svc.Start(created.ID, "host-1")
	require.NoError(t, err)
	assert.Equal(t, room.StatusActive, started.Status)
	assert.Equal(t, "status_change", frameType(t, sub))

	order, err := svc.Buzz(created.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, order)
	order, err = svc.Buzz(created.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, order)
	assert.Equal(t, "buzz", frameType(t, sub))
	assert.Equal(t, "buzz", frameType(t, sub))

	reset, err := svc.Reset(created.ID, "host-1")
	require.NoError(t, err)
	assert.Equal(t, room.StatusWaiting, reset.Status)
	for _, p := range reset.Participants {
		assert.False(t, p.Acted)
		assert.Zero(t, p.Order)
	}
	assert.Equal(t, "reset_room", frameType(t, sub))
}

func TestBuzzerJoinAfterStartRejected(t *testing.T) {
	svc, _ := newBuzzerService()
	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)

	_, err = svc.Join(created.PIN, "u1", "Bob")
	require.NoError(t, err)
	_, err = svc.Start(created.ID, "host-1")
	require.NoError(t, err)

	_, err = svc.Join(created.PIN, "u2", "Carol")
	assert.ErrorIs(t, err, ErrRoomNotJoinable)

	snap, err := svc.GetRoom(created.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Participants, 1)
}

func TestBuzzerJoinUnknownPIN(t *testing.T) {
	svc, _ := newBuzzerService()
	_, err := svc.Join("999999", "u1", "Bob")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestBuzzerDoubleBuzzRejected(t *testing.T) {
	svc, _ := newBuzzerService()
	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)
	_, err = svc.Join(created.PIN, "u1", "Bob")
	require.NoError(t, err)
	_, err = svc.Start(created.ID, "host-1")
	require.NoError(t, err)

	_, err = svc.Buzz(created.ID, "u1")
	require.NoError(t, err)
	_, err = svc.Buzz(created.ID, "u1")
	assert.ErrorIs(t, err, room.ErrAlreadyActed)
}

func TestBuzzerBuzzRequiresActiveRoom(t *testing.T) {
	svc, _ := newBuzzerService()
	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)
	_, err = svc.Join(created.PIN, "u1", "Bob")
	require.NoError(t, err)

	_, err = svc.Buzz(created.ID, "u1")
	assert.ErrorIs(t, err, ErrRoomNotActive)
}

func TestBuzzerBuzzByOutsiderRejected(t *testing.T) {
	svc, _ := newBuzzerService()
	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)
	_, err = svc.Join(created.PIN, "u1", "Bob")
	require.NoError(t, err)
	_, err = svc.Start(created.ID, "host-1")
	require.NoError(t, err)

	_, err = svc.Buzz(created.ID, "stranger")
	assert.ErrorIs(t, err, room.ErrParticipantNotFound)
}

func TestBuzzerHostOnlyTransitions(t *testing.T) {
	svc, _ := newBuzzerService()
	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)
	_, err = svc.Join(created.PIN, "u1", "Bob")
	require.NoError(t, err)

	_, err = svc.Start(created.ID, "u1")
	assert.ErrorIs(t, err, ErrNotHost)
	_, err = svc.Reset(created.ID, "u1")
	assert.ErrorIs(t, err, ErrNotHost)
	assert.ErrorIs(t, svc.DeleteRoom(created.ID, "u1"), ErrNotHost)
}

func TestBuzzerInvalidTransitions(t *testing.T) {
	svc, _ := newBuzzerService()
	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)

	// Stop before start.
	_, err = svc.Stop(created.ID, "host-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Start(created.ID, "host-1")
	require.NoError(t, err)
	_, err = svc.Start(created.ID, "host-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Stop(created.ID, "host-1")
	require.NoError(t, err)
	_, err = svc.Stop(created.ID, "host-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBuzzerResetRevivesFinishedRoom(t *testing.T) {
	svc, _ := newBuzzerService()
	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)
	_, err = svc.Start(created.ID, "host-1")
	require.NoError(t, err)
	_, err = svc.Stop(created.ID, "host-1")
	require.NoError(t, err)

	// Finished rooms are hidden from PIN lookup until reset.
	_, err = svc.Join(created.PIN, "u1", "Bob")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)

	reset, err := svc.Reset(created.ID, "host-1")
	require.NoError(t, err)
	assert.Equal(t, room.StatusWaiting, reset.Status)

	_, err = svc.Join(created.PIN, "u1", "Bob")
	require.NoError(t, err)
}

func TestBuzzerLastLeaveDeletesRoom(t *testing.T) {
	svc, _ := newBuzzerService()
	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)
	_, err = svc.Join(created.PIN, "u1", "Bob")
	require.NoError(t, err)

	require.NoError(t, svc.Leave(created.ID, "u1"))

	_, err = svc.GetRoom(created.ID)
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
	_, err = svc.Join(created.PIN, "u2", "Carol")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestBuzzerListRoomsFiltersByHost(t *testing.T) {
	svc, _ := newBuzzerService()
	mine, err := svc.CreateRoom("host-1", "Alice", "Mine", "")
	require.NoError(t, err)
	_, err = svc.CreateRoom("host-2", "Dave", "Theirs", "")
	require.NoError(t, err)

	rooms := svc.ListRooms("host-1")
	require.Len(t, rooms, 1)
	assert.Equal(t, mine.ID, rooms[0].ID)
}

func TestBuzzerDisconnectedSubscriberDoesNotBlockOthers(t *testing.T) {
	svc, hub := newBuzzerService()
	created, err := svc.CreateRoom("host-1", "Alice", "Trivia Night", "")
	require.NoError(t, err)
	_, err = svc.Join(created.PIN, "u1", "Bob")
	require.NoError(t, err)

	gone := hub.Subscribe(created.ID)
	live := hub.Subscribe(created.ID)
	defer hub.Unsubscribe(live)
	hub.Unsubscribe(gone)

	_, err = svc.Start(created.ID, "host-1")
	require.NoError(t, err)
	_, err = svc.Buzz(created.ID, "u1")
	require.NoError(t, err)

	assert.Equal(t, "status_change", frameType(t, live))
	assert.Equal(t, "buzz", frameType(t, live))
}
