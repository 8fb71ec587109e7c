package models

type Question struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	QuizID    uint     `gorm:"not null;index" json:"quiz_id"`
	Text      string   `gorm:"type:text;not null" json:"text"`
	OrderNum  int      `gorm:"not null" json:"order_num"`
	Points    int      `gorm:"not null;default:100" json:"points"`
	TimeLimit int      `gorm:"not null;default:30" json:"time_limit"`
	Options   []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

// CorrectAnswer returns the text of the option marked correct. Submissions
// are graded by exact match against this value.
func (q *Question) CorrectAnswer() string {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o.Text
		}
	}
	return ""
}

// OptionTexts returns the client-facing answer choices.
func (q *Question) OptionTexts() []string {
	texts := make([]string, len(q.Options))
	for i, o := range q.Options {
		texts[i] = o.Text
	}
	return texts
}
