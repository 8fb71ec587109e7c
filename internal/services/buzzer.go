package services

import (
	"github.com/sirupsen/logrus"

	"github.com/MontaQLabs/PolkArena-sub001/internal/realtime"
	"github.com/MontaQLabs/PolkArena-sub001/internal/room"
)

// BuzzerGame is the buzzer domain's room extension; buzzer rooms carry no
// state beyond the shared room shape.
type BuzzerGame struct{}

type BuzzerRoom = room.Snapshot[BuzzerGame]

// BuzzerService runs the buzzer session protocol: who may transition the
// room, when a buzz counts, and which events go out. All room state lives
// in its in-memory store; the hub receives one event per accepted mutation.
type BuzzerService struct {
	rooms *room.Store[BuzzerGame]
	hub   *realtime.Hub
}

func NewBuzzerService(hub *realtime.Hub) *BuzzerService {
	return &BuzzerService{
		rooms: room.NewStore[BuzzerGame](),
		hub:   hub,
	}
}

func (s *BuzzerService) CreateRoom(hostID, hostName, name, description string) (BuzzerRoom, error) {
	snap, err := s.rooms.Create(hostID, hostName, name, description, BuzzerGame{})
	if err != nil {
		return BuzzerRoom{}, err
	}
	logrus.WithFields(logrus.Fields{"room": snap.ID, "pin": snap.PIN}).Info("buzzer: room created")
	return snap, nil
}

func (s *BuzzerService) GetRoom(roomID string) (BuzzerRoom, error) {
	return s.rooms.Get(roomID)
}

// ListRooms returns the caller's rooms, hosted ones first-hand.
func (s *BuzzerService) ListRooms(hostID string) []BuzzerRoom {
	all := s.rooms.List()
	mine := make([]BuzzerRoom, 0, len(all))
	for _, snap := range all {
		if snap.HostID == hostID {
			mine = append(mine, snap)
		}
	}
	return mine
}

// Join adds the caller to the room behind the PIN. Only waiting rooms
// accept participants; everyone connected gets the refreshed snapshot.
func (s *BuzzerService) Join(pin, userID, name string) (BuzzerRoom, error) {
	found, err := s.rooms.GetByPIN(pin)
	if err != nil {
		return BuzzerRoom{}, err
	}

	snap, err := s.rooms.Update(found.ID, func(r *room.Room[BuzzerGame]) error {
		if r.Status != room.StatusWaiting {
			return ErrRoomNotJoinable
		}
		return r.Add(userID, name)
	})
	if err != nil {
		return BuzzerRoom{}, err
	}

	s.hub.Broadcast(snap.ID, realtime.RoomUpdate{Room: snap})
	return snap, nil
}

// Leave removes the caller; the room is garbage-collected when its last
// participant leaves.
func (s *BuzzerService) Leave(roomID, userID string) error {
	_, deleted, err := s.rooms.RemoveParticipant(roomID, userID)
	if err != nil {
		return err
	}
	if deleted {
		logrus.WithField("room", roomID).Info("buzzer: room emptied, deleted")
		return nil
	}

	snap, err := s.rooms.Get(roomID)
	if err != nil {
		return nil
	}
	s.hub.Broadcast(roomID, realtime.RoomUpdate{Room: snap})
	return nil
}

func (s *BuzzerService) Start(roomID, hostID string) (BuzzerRoom, error) {
	return s.transition(roomID, hostID, room.StatusWaiting, room.StatusActive)
}

func (s *BuzzerService) Stop(roomID, hostID string) (BuzzerRoom, error) {
	return s.transition(roomID, hostID, room.StatusActive, room.StatusFinished)
}

func (s *BuzzerService) transition(roomID, hostID string, from, to room.Status) (BuzzerRoom, error) {
	snap, err := s.rooms.Update(roomID, func(r *room.Room[BuzzerGame]) error {
		if !r.IsHost(hostID) {
			return ErrNotHost
		}
		if r.Status != from {
			return ErrInvalidTransition
		}
		r.Status = to
		return nil
	})
	if err != nil {
		return BuzzerRoom{}, err
	}

	s.hub.Broadcast(roomID, realtime.StatusChange{Status: string(to)})
	return snap, nil
}

// Reset returns the room to an action-cleared waiting state. Idempotent:
// resetting an already-waiting room is a no-op with the same outcome.
func (s *BuzzerService) Reset(roomID, hostID string) (BuzzerRoom, error) {
	snap, err := s.rooms.Update(roomID, func(r *room.Room[BuzzerGame]) error {
		if !r.IsHost(hostID) {
			return ErrNotHost
		}
		r.ClearRound()
		r.Status = room.StatusWaiting
		return nil
	})
	if err != nil {
		return BuzzerRoom{}, err
	}

	s.hub.Broadcast(roomID, realtime.ResetRoom{})
	return snap, nil
}

// Buzz records the caller's press for this round. The first press gets
// ordinal 1; ordinals follow arrival order at the store, and a second
// press by the same participant is rejected.
func (s *BuzzerService) Buzz(roomID, userID string) (int, error) {
	var order int
	var name string
	_, err := s.rooms.Update(roomID, func(r *room.Room[BuzzerGame]) error {
		if r.Status != room.StatusActive {
			return ErrRoomNotActive
		}
		p, ok := r.Participant(userID)
		if !ok {
			return room.ErrParticipantNotFound
		}
		var err error
		order, err = r.Act(userID, true)
		name = p.Name
		return err
	})
	if err != nil {
		return 0, err
	}

	s.hub.Broadcast(roomID, realtime.Buzz{ParticipantID: userID, Name: name, Order: order})
	return order, nil
}

// DeleteRoom removes the room outright. Host only.
func (s *BuzzerService) DeleteRoom(roomID, hostID string) error {
	_, err := s.rooms.Update(roomID, func(r *room.Room[BuzzerGame]) error {
		if !r.IsHost(hostID) {
			return ErrNotHost
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.rooms.Delete(roomID)
}
