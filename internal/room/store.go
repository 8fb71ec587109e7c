package room

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// pinAttempts bounds the retry loop when allocating a join PIN. Exhausting
// it surfaces as ErrPINExhausted rather than handing out a duplicate.
const pinAttempts = 100

// Store owns every live room of one game domain. The store map and the PIN
// index are guarded by the store lock; each room additionally carries its
// own lock so mutations of unrelated rooms do not contend. Lock order is
// always store before room.
type Store[E any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[E]
	pins  map[string]string // PIN -> room id, freed on room deletion
}

func NewStore[E any]() *Store[E] {
	return &Store[E]{
		rooms: make(map[string]*Room[E]),
		pins:  make(map[string]string),
	}
}

// Create registers a new room in waiting status with a fresh id and a PIN
// unique among rooms still held by the store.
func (s *Store[E]) Create(hostID, hostName, name, description string, game E) (Snapshot[E], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pin, err := s.allocatePIN()
	if err != nil {
		return Snapshot[E]{}, err
	}

	r := &Room[E]{
		ID:           uuid.NewString(),
		PIN:          pin,
		HostID:       hostID,
		HostName:     hostName,
		Name:         name,
		Description:  description,
		Status:       StatusWaiting,
		Game:         game,
		Participants: make(map[string]*Participant),
		CreatedAt:    time.Now(),
	}
	s.rooms[r.ID] = r
	s.pins[pin] = r.ID
	return r.snapshot(), nil
}

// allocatePIN picks a 6-digit PIN not currently assigned. Caller must hold
// the store lock.
func (s *Store[E]) allocatePIN() (string, error) {
	for i := 0; i < pinAttempts; i++ {
		pin := fmt.Sprintf("%06d", rand.Intn(1000000))
		if _, taken := s.pins[pin]; !taken {
			return pin, nil
		}
	}
	return "", ErrPINExhausted
}

func (s *Store[E]) find(id string) (*Room[E], error) {
	s.mu.RLock()
	r, ok := s.rooms[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Get returns a snapshot of the room with the given id.
func (s *Store[E]) Get(id string) (Snapshot[E], error) {
	r, err := s.find(id)
	if err != nil {
		return Snapshot[E]{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return Snapshot[E]{}, ErrRoomNotFound
	}
	return r.snapshot(), nil
}

// GetByPIN resolves a join PIN. Finished rooms keep their PIN reserved until
// deletion but are no longer joinable, so they do not resolve here.
func (s *Store[E]) GetByPIN(pin string) (Snapshot[E], error) {
	s.mu.RLock()
	id, ok := s.pins[pin]
	r := s.rooms[id]
	s.mu.RUnlock()
	if !ok || r == nil {
		return Snapshot[E]{}, ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted || r.Status == StatusFinished {
		return Snapshot[E]{}, ErrRoomNotFound
	}
	return r.snapshot(), nil
}

// Update runs fn with the room's lock held and returns a snapshot of the
// resulting state. Protocol-level compound mutations (status checks plus
// writes) go through here so they are atomic per room. The deleted re-check
// closes the window between looking the room up and taking its lock.
func (s *Store[E]) Update(id string, fn func(*Room[E]) error) (Snapshot[E], error) {
	r, err := s.find(id)
	if err != nil {
		return Snapshot[E]{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return Snapshot[E]{}, ErrRoomNotFound
	}
	if err := fn(r); err != nil {
		return Snapshot[E]{}, err
	}
	return r.snapshot(), nil
}

// AddParticipant joins an identity into a room. Idempotence is on the store:
// a second join for the same identity reports ErrAlreadyJoined.
func (s *Store[E]) AddParticipant(roomID, participantID, name string) (Snapshot[E], error) {
	return s.Update(roomID, func(r *Room[E]) error {
		return r.Add(participantID, name)
	})
}

// RemoveParticipant deletes a participant. When the last participant leaves,
// the room itself is deleted and its PIN freed.
func (s *Store[E]) RemoveParticipant(roomID, participantID string) (left Participant, roomDeleted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return Participant{}, false, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	left, err = r.Remove(participantID)
	if err != nil {
		return Participant{}, false, err
	}
	if len(r.Participants) == 0 {
		r.deleted = true
		delete(s.rooms, r.ID)
		delete(s.pins, r.PIN)
		return left, true, nil
	}
	return left, false, nil
}

// SetStatus writes the room status. Authority and transition validity are
// the protocol layer's concern, not the store's.
func (s *Store[E]) SetStatus(roomID string, status Status) (Snapshot[E], error) {
	return s.Update(roomID, func(r *Room[E]) error {
		r.Status = status
		return nil
	})
}

// RecordAction sets or clears a participant's per-round action flag,
// assigning the next ordinal on the not-acted to acted transition.
func (s *Store[E]) RecordAction(roomID, participantID string, acted bool) (int, error) {
	var order int
	_, err := s.Update(roomID, func(r *Room[E]) error {
		var err error
		order, err = r.Act(participantID, acted)
		return err
	})
	return order, err
}

// ResetRound clears every participant's action state and returns the room
// to waiting. Membership, host, and PIN are untouched.
func (s *Store[E]) ResetRound(roomID string) (Snapshot[E], error) {
	return s.Update(roomID, func(r *Room[E]) error {
		r.ClearRound()
		r.Status = StatusWaiting
		return nil
	})
}

// Delete removes a room and frees its PIN.
func (s *Store[E]) Delete(roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	r.deleted = true
	r.mu.Unlock()
	delete(s.rooms, roomID)
	delete(s.pins, r.PIN)
	return nil
}

// List returns a point-in-time snapshot of every room in the store.
func (s *Store[E]) List() []Snapshot[E] {
	s.mu.RLock()
	rooms := make([]*Room[E], 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.RUnlock()

	snaps := make([]Snapshot[E], 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		if !r.deleted {
			snaps = append(snaps, r.snapshot())
		}
		r.mu.Unlock()
	}
	return snaps
}
