// Package realtime fans room events out to connected clients. The hub is
// transport-agnostic: SSE and WebSocket handlers subscribe on behalf of a
// connection and drain the same encoded frames.
package realtime

import "encoding/json"

// Event is the closed set of payloads that can be pushed to subscribers.
// Every variant carries its wire tag; the envelope written to clients is
// {"type": <tag>, "data": <event fields>}.
type Event interface {
	EventType() string
	isEvent()
}

// RoomUpdate carries a full room snapshot. It is sent to every new
// subscriber immediately on subscribe, which is the only catch-up mechanism
// for events missed while disconnected.
type RoomUpdate struct {
	Room any `json:"room"`
}

// Buzz announces a buzzer press and the ordinal it was assigned.
type Buzz struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Order         int    `json:"order"`
}

// StatusChange announces a buzzer room status transition.
type StatusChange struct {
	Status string `json:"status"`
}

// ResetRoom tells clients the host cleared the current round.
type ResetRoom struct{}

// Question is the client-facing content of a quiz question. The correct
// answer is deliberately absent.
type Question struct {
	Index     int      `json:"index"`
	Text      string   `json:"text"`
	Options   []string `json:"options"`
	Points    int      `json:"points"`
	TimeLimit int      `json:"time_limit"`
}

// QuestionStart announces that the host opened a question for answers.
type QuestionStart struct {
	Index     int      `json:"index"`
	Question  Question `json:"question"`
	TimeLimit int      `json:"time_limit"`
}

// QuestionEnd announces that the host closed a question.
type QuestionEnd struct {
	Index int `json:"index"`
}

// AnswerSubmitted reports one participant's graded submission.
type AnswerSubmitted struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Answer        string `json:"answer"`
	IsCorrect     bool   `json:"is_correct"`
	Points        int    `json:"points"`
	ElapsedMS     int64  `json:"elapsed_ms"`
}

// ParticipantJoined announces a successful join.
type ParticipantJoined struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParticipantLeft announces a leave.
type ParticipantLeft struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScoreEntry is one row of the ranked quiz standings.
type ScoreEntry struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// ScoreUpdate carries the full ranked participant list.
type ScoreUpdate struct {
	Scores []ScoreEntry `json:"scores"`
}

// RoomStatusChange announces a quiz room status transition.
type RoomStatusChange struct {
	Status string `json:"status"`
}

func (RoomUpdate) EventType() string        { return "room_update" }
func (Buzz) EventType() string              { return "buzz" }
func (StatusChange) EventType() string      { return "status_change" }
func (ResetRoom) EventType() string         { return "reset_room" }
func (QuestionStart) EventType() string     { return "question_start" }
func (QuestionEnd) EventType() string       { return "question_end" }
func (AnswerSubmitted) EventType() string   { return "answer_submitted" }
func (ParticipantJoined) EventType() string { return "participant_joined" }
func (ParticipantLeft) EventType() string   { return "participant_left" }
func (ScoreUpdate) EventType() string       { return "score_update" }
func (RoomStatusChange) EventType() string  { return "room_status_change" }

func (RoomUpdate) isEvent()        {}
func (Buzz) isEvent()              {}
func (StatusChange) isEvent()      {}
func (ResetRoom) isEvent()         {}
func (QuestionStart) isEvent()     {}
func (QuestionEnd) isEvent()       {}
func (AnswerSubmitted) isEvent()   {}
func (ParticipantJoined) isEvent() {}
func (ParticipantLeft) isEvent()   {}
func (ScoreUpdate) isEvent()       {}
func (RoomStatusChange) isEvent()  {}

type envelope struct {
	Type string `json:"type"`
	Data Event  `json:"data"`
}

// Encode serializes an event into its wire envelope.
func Encode(ev Event) ([]byte, error) {
	return json.Marshal(envelope{Type: ev.EventType(), Data: ev})
}
