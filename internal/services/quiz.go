package services

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MontaQLabs/PolkArena-sub001/internal/realtime"
	"github.com/MontaQLabs/PolkArena-sub001/internal/room"
)

// QuizGame is the quiz domain's room extension: which question bank the
// room plays and which question, if any, is currently open for answers.
type QuizGame struct {
	QuizID          uint      `json:"quiz_id"`
	CurrentQuestion int       `json:"current_question"`
	QuestionActive  bool      `json:"question_active"`
	AskedAt         time.Time `json:"asked_at,omitempty"`
}

const noQuestion = -1

type QuizRoom = room.Snapshot[QuizGame]

// AnswerResult is what the submitting participant gets back; everyone else
// learns the same through the answer_submitted broadcast.
type AnswerResult struct {
	QuestionIndex int    `json:"question_index"`
	IsCorrect     bool   `json:"is_correct"`
	PointsEarned  int    `json:"points_earned"`
	TotalScore    int    `json:"total_score"`
	ElapsedMS     int64  `json:"elapsed_ms"`
	CorrectAnswer string `json:"correct_answer"`
}

// QuizService runs the quiz session protocol on top of the in-memory room
// store, grading submissions against the durable question bank. Scores are
// live working values for the session only.
type QuizService struct {
	rooms *room.Store[QuizGame]
	hub   *realtime.Hub
	bank  QuestionSource
}

func NewQuizService(hub *realtime.Hub, bank QuestionSource) *QuizService {
	return &QuizService{
		rooms: room.NewStore[QuizGame](),
		hub:   hub,
		bank:  bank,
	}
}

func (s *QuizService) CreateRoom(hostID, hostName, name, description string, quizID uint) (QuizRoom, error) {
	if _, err := s.bank.GetQuiz(quizID); err != nil {
		return QuizRoom{}, err
	}

	snap, err := s.rooms.Create(hostID, hostName, name, description, QuizGame{
		QuizID:          quizID,
		CurrentQuestion: noQuestion,
	})
	if err != nil {
		return QuizRoom{}, err
	}
	logrus.WithFields(logrus.Fields{"room": snap.ID, "pin": snap.PIN, "quiz": quizID}).Info("quiz: room created")
	return snap, nil
}

func (s *QuizService) GetRoom(roomID string) (QuizRoom, error) {
	return s.rooms.Get(roomID)
}

func (s *QuizService) ListRooms(hostID string) []QuizRoom {
	all := s.rooms.List()
	mine := make([]QuizRoom, 0, len(all))
	for _, snap := range all {
		if snap.HostID == hostID {
			mine = append(mine, snap)
		}
	}
	return mine
}

func (s *QuizService) Join(pin, userID, name string) (QuizRoom, error) {
	found, err := s.rooms.GetByPIN(pin)
	if err != nil {
		return QuizRoom{}, err
	}

	snap, err := s.rooms.Update(found.ID, func(r *room.Room[QuizGame]) error {
		if r.Status != room.StatusWaiting {
			return ErrRoomNotJoinable
		}
		return r.Add(userID, name)
	})
	if err != nil {
		return QuizRoom{}, err
	}

	s.hub.Broadcast(snap.ID, realtime.ParticipantJoined{ID: userID, Name: name})
	return snap, nil
}

func (s *QuizService) Leave(roomID, userID string) error {
	left, deleted, err := s.rooms.RemoveParticipant(roomID, userID)
	if err != nil {
		return err
	}
	if deleted {
		logrus.WithField("room", roomID).Info("quiz: room emptied, deleted")
		return nil
	}

	s.hub.Broadcast(roomID, realtime.ParticipantLeft{ID: left.ID, Name: left.Name})
	return nil
}

func (s *QuizService) Start(roomID, hostID string) (QuizRoom, error) {
	return s.transition(roomID, hostID, room.StatusWaiting, room.StatusActive)
}

func (s *QuizService) Finish(roomID, hostID string) (QuizRoom, error) {
	return s.transition(roomID, hostID, room.StatusActive, room.StatusFinished)
}

func (s *QuizService) transition(roomID, hostID string, from, to room.Status) (QuizRoom, error) {
	snap, err := s.rooms.Update(roomID, func(r *room.Room[QuizGame]) error {
		if !r.IsHost(hostID) {
			return ErrNotHost
		}
		if r.Status != from {
			return ErrInvalidTransition
		}
		r.Status = to
		if to == room.StatusFinished {
			r.Game.QuestionActive = false
		}
		return nil
	})
	if err != nil {
		return QuizRoom{}, err
	}

	s.hub.Broadcast(roomID, realtime.RoomStatusChange{Status: string(to)})
	return snap, nil
}

// Reset returns the room to waiting with scores and answer history wiped;
// membership and the bound quiz stay. Idempotent.
func (s *QuizService) Reset(roomID, hostID string) (QuizRoom, error) {
	snap, err := s.rooms.Update(roomID, func(r *room.Room[QuizGame]) error {
		if !r.IsHost(hostID) {
			return ErrNotHost
		}
		r.ClearProgress()
		r.Status = room.StatusWaiting
		r.Game.CurrentQuestion = noQuestion
		r.Game.QuestionActive = false
		r.Game.AskedAt = time.Time{}
		return nil
	})
	if err != nil {
		return QuizRoom{}, err
	}

	s.hub.Broadcast(roomID, realtime.RoomUpdate{Room: snap})
	return snap, nil
}

// StartQuestion opens the question at the given index for answers and
// pushes its content (minus the correct answer) to every subscriber.
// Opening is keyed only to host authority, not to room status; submitting
// still requires an active room.
func (s *QuizService) StartQuestion(roomID, hostID string, index int) (QuizRoom, error) {
	found, err := s.rooms.Get(roomID)
	if err != nil {
		return QuizRoom{}, err
	}
	question, err := s.bank.GetQuestion(found.Game.QuizID, index)
	if err != nil {
		return QuizRoom{}, err
	}

	snap, err := s.rooms.Update(roomID, func(r *room.Room[QuizGame]) error {
		if !r.IsHost(hostID) {
			return ErrNotHost
		}
		r.Game.CurrentQuestion = index
		r.Game.QuestionActive = true
		r.Game.AskedAt = time.Now()
		return nil
	})
	if err != nil {
		return QuizRoom{}, err
	}

	s.hub.Broadcast(roomID, realtime.QuestionStart{
		Index: index,
		Question: realtime.Question{
			Index:     index,
			Text:      question.Text,
			Options:   question.OptionTexts(),
			Points:    question.Points,
			TimeLimit: question.TimeLimit,
		},
		TimeLimit: question.TimeLimit,
	})
	return snap, nil
}

// EndQuestion closes the question at the given index.
func (s *QuizService) EndQuestion(roomID, hostID string, index int) (QuizRoom, error) {
	snap, err := s.rooms.Update(roomID, func(r *room.Room[QuizGame]) error {
		if !r.IsHost(hostID) {
			return ErrNotHost
		}
		if !r.Game.QuestionActive || r.Game.CurrentQuestion != index {
			return ErrQuestionNotActive
		}
		r.Game.QuestionActive = false
		return nil
	})
	if err != nil {
		return QuizRoom{}, err
	}

	s.hub.Broadcast(roomID, realtime.QuestionEnd{Index: index})
	return snap, nil
}

// SubmitAnswer grades the caller's answer for the question at the given
// index: exact match against the stored correct answer awards the
// question's points, anything else zero. One submission per participant
// per question.
func (s *QuizService) SubmitAnswer(roomID, userID string, index int, answer string) (AnswerResult, error) {
	found, err := s.rooms.Get(roomID)
	if err != nil {
		return AnswerResult{}, err
	}
	question, err := s.bank.GetQuestion(found.Game.QuizID, index)
	if err != nil {
		return AnswerResult{}, err
	}

	correct := answer == question.CorrectAnswer()
	points := 0
	if correct {
		points = question.Points
	}

	var result AnswerResult
	var name string
	snap, err := s.rooms.Update(roomID, func(r *room.Room[QuizGame]) error {
		if r.Status != room.StatusActive {
			return ErrRoomNotActive
		}
		if !r.Game.QuestionActive || r.Game.CurrentQuestion != index {
			return ErrQuestionNotActive
		}
		p, ok := r.Participant(userID)
		if !ok {
			return room.ErrParticipantNotFound
		}
		if p.HasAnswered(index) {
			return ErrAlreadyAnswered
		}
		p.MarkAnswered(index, points)
		name = p.Name
		result = AnswerResult{
			QuestionIndex: index,
			IsCorrect:     correct,
			PointsEarned:  points,
			TotalScore:    p.Score,
			ElapsedMS:     time.Since(r.Game.AskedAt).Milliseconds(),
			CorrectAnswer: question.CorrectAnswer(),
		}
		return nil
	})
	if err != nil {
		return AnswerResult{}, err
	}

	s.hub.Broadcast(roomID, realtime.AnswerSubmitted{
		ParticipantID: userID,
		Name:          name,
		Answer:        answer,
		IsCorrect:     correct,
		Points:        points,
		ElapsedMS:     result.ElapsedMS,
	})
	s.hub.Broadcast(roomID, realtime.ScoreUpdate{Scores: rankScores(snap)})
	return result, nil
}

// Leaderboard returns the ranked standings for a room.
func (s *QuizService) Leaderboard(roomID string) ([]realtime.ScoreEntry, error) {
	snap, err := s.rooms.Get(roomID)
	if err != nil {
		return nil, err
	}
	return rankScores(snap), nil
}

// rankScores orders participants by score descending, join order breaking
// ties, and assigns 1-based positions.
func rankScores(snap QuizRoom) []realtime.ScoreEntry {
	parts := make([]room.Participant, len(snap.Participants))
	copy(parts, snap.Participants)
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].Score > parts[j].Score
	})

	entries := make([]realtime.ScoreEntry, len(parts))
	for i, p := range parts {
		entries[i] = realtime.ScoreEntry{
			Position: i + 1,
			ID:       p.ID,
			Name:     p.Name,
			Score:    p.Score,
		}
	}
	return entries
}

// DeleteRoom removes the room outright. Host only.
func (s *QuizService) DeleteRoom(roomID, hostID string) error {
	_, err := s.rooms.Update(roomID, func(r *room.Room[QuizGame]) error {
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
