// Package room is the in-memory registry backing the live game rooms.
// Rooms are ephemeral: nothing here survives a process restart. The store
// is generic over a per-domain game state E so the buzzer and quiz engines
// share one implementation.
package room

import (
	"sync"
	"time"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Participant is the live record for one joined identity. Buzzer rooms use
// the acted flag and ordinal, quiz rooms use the score and answered set.
type Participant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Acted    bool      `json:"acted"`
	Order    int       `json:"order,omitempty"`
	Score    int       `json:"score"`
	JoinedAt time.Time `json:"joined_at"`

	answered map[int]bool
}

// HasAnswered reports whether the participant already submitted an answer
// for the given question index.
func (p *Participant) HasAnswered(questionIndex int) bool {
	return p.answered[questionIndex]
}

// MarkAnswered records a submission for the given question index and adds
// the awarded points to the participant's running score.
func (p *Participant) MarkAnswered(questionIndex, points int) {
	if p.answered == nil {
		p.answered = make(map[int]bool)
	}
	p.answered[questionIndex] = true
	p.Score += points
}

// Room is one live game session. All mutation goes through the Store, which
// serializes access per room; callbacks passed to Store.Update run with the
// room's lock held and may use the methods below directly.
type Room[E any] struct {
	ID          string
	PIN         string
	HostID      string
	HostName    string
	Name        string
	Description string
	Status      Status
	Game        E
	CreatedAt   time.Time

	Participants map[string]*Participant
	joinOrder    []string

	mu sync.Mutex
	// deleted is set under mu when the store drops the room, so a caller
	// holding a stale pointer cannot mutate an orphan.
	deleted bool
}

// Participant returns the live record for the given identity.
func (r *Room[E]) Participant(id string) (*Participant, bool) {
	p, ok := r.Participants[id]
	return p, ok
}

// IsHost reports whether the given identity created the room.
func (r *Room[E]) IsHost(userID string) bool {
	return r.HostID == userID
}

// Add inserts a participant. Joining twice is rejected, never duplicated.
func (r *Room[E]) Add(id, name string) error {
	if _, ok := r.Participants[id]; ok {
		return ErrAlreadyJoined
	}
	r.Participants[id] = &Participant{
		ID:       id,
		Name:     name,
		JoinedAt: time.Now(),
	}
	r.joinOrder = append(r.joinOrder, id)
	return nil
}

// Remove deletes a participant entry.
func (r *Room[E]) Remove(id string) (Participant, error) {
	p, ok := r.Participants[id]
	if !ok {
		return Participant{}, ErrParticipantNotFound
	}
	delete(r.Participants, id)
	for i, pid := range r.joinOrder {
		if pid == id {
			r.joinOrder = append(r.joinOrder[:i], r.joinOrder[i+1:]...)
			break
		}
	}
	return *p, nil
}

// Act sets the participant's per-round action flag. The first transition
// from not-acted to acted is assigned the next sequential ordinal, so
// ordinals form a contiguous 1..n sequence in arrival order. Clearing with
// acted=false drops both flag and ordinal.
func (r *Room[E]) Act(id string, acted bool) (int, error) {
	p, ok := r.Participants[id]
	if !ok {
		return 0, ErrParticipantNotFound
	}
	if !acted {
		p.Acted = false
		p.Order = 0
		return 0, nil
	}
	if p.Acted {
		return 0, ErrAlreadyActed
	}
	p.Acted = true
	p.Order = r.actedCount() + 1
	return p.Order, nil
}

func (r *Room[E]) actedCount() int {
	n := 0
	for _, p := range r.Participants {
		if p.Acted {
			n++
		}
	}
	return n
}

// ClearRound wipes every participant's acted flag and ordinal. Membership
// and scores are preserved.
func (r *Room[E]) ClearRound() {
	for _, p := range r.Participants {
		p.Acted = false
		p.Order = 0
	}
}

// ClearProgress additionally wipes scores and answer history, returning
// every participant to a freshly-joined state.
func (r *Room[E]) ClearProgress() {
	for _, p := range r.Participants {
		p.Acted = false
		p.Order = 0
		p.Score = 0
		p.answered = nil
	}
}

// Snapshot is a detached copy of a room, safe to hand to handlers and
// serialize; mutating it never touches the live room.
type Snapshot[E any] struct {
	ID           string        `json:"id"`
	PIN          string        `json:"pin"`
	HostID       string        `json:"host_id"`
	HostName     string        `json:"host_name"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Status       Status        `json:"status"`
	Participants []Participant `json:"participants"`
	Game         E             `json:"game"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Participant returns the copied record for the given identity.
func (s Snapshot[E]) Participant(id string) (Participant, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// snapshot copies the room. Caller must hold the room's lock.
func (r *Room[E]) snapshot() Snapshot[E] {
	parts := make([]Participant, 0, len(r.joinOrder))
	for _, id := range r.joinOrder {
		p := *r.Participants[id]
		if p.answered != nil {
			answered := make(map[int]bool, len(p.answered))
			for k, v := range p.answered {
				answered[k] = v
			}
			p.answered = answered
		}
		parts = append(parts, p)
	}
	return Snapshot[E]{
		ID:           r.ID,
		PIN:          r.PIN,
		HostID:       r.HostID,
		HostName:     r.HostName,
		Name:         r.Name,
		Description:  r.Description,
		Status:       r.Status,
		Participants: parts,
		Game:         r.Game,
		CreatedAt:    r.CreatedAt,
	}
}
