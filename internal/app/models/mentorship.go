package models

import "time"

// RequestStatus is the lifecycle position of a mentorship request
type RequestStatus string

const (
	StatusPending           RequestStatus = "pending"
	StatusAccepted          RequestStatus = "accepted"
	StatusCompleted         RequestStatus = "completed"
	StatusFeedbackSubmitted RequestStatus = "feedback_submitted"
)

// nextStatus is the only status each status may move to
var nextStatus = map[RequestStatus]RequestStatus{
	StatusPending:   StatusAccepted,
	StatusAccepted:  StatusCompleted,
	StatusCompleted: StatusFeedbackSubmitted,
}

// CanTransition reports whether a request may move from s to next. Status only moves
// forward one step at a time.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	to, ok := nextStatus[s]
	return ok && to == next
}

// QuizQuestion is one multiple-choice question
type QuizQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Quiz is the optional assessment a mentor attaches to an accepted request
type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
	Enabled   bool           `json:"isEnabled"`
}

// Grade counts the positions where answers match the correct option.
// Callers check len(answers) == len(q.Questions) first.
func (q *Quiz) Grade(answers []int) int {
	score := 0
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			score++
		}
	}
	return score
}

// MentorshipRequest pairs a learner with a mentor for one skill
type MentorshipRequest struct {
	ID           int64         `json:"id" db:"id"`
	LearnerID    int64         `json:"learnerId" db:"learner_id"`
	MentorID     int64         `json:"mentorId" db:"mentor_id"`
	SkillID      int64         `json:"skillId" db:"skill_id"`
	Status       RequestStatus `json:"status" db:"status"`
	Message      string        `json:"message" db:"message"`
	SessionNotes string        `json:"sessionNotes" db:"session_notes"`
	Quiz         *Quiz         `json:"quiz,omitempty" db:"quiz"`
	QuizScore    *int          `json:"quizScore" db:"quiz_score"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	AcceptedAt   *time.Time    `json:"acceptedAt,omitempty" db:"accepted_at"`
	CompletedAt  *time.Time    `json:"completedAt,omitempty" db:"completed_at"`
}

// IsParticipant reports whether the account is the learner or the mentor
func (r *MentorshipRequest) IsParticipant(accountID int64) bool {
	return r.LearnerID == accountID || r.MentorID == accountID
}

// Feedback is the learner's one-shot review of a completed request
type Feedback struct {
	ID        int64     `json:"id" db:"id"`
	RequestID int64     `json:"requestId" db:"request_id"`
	LearnerID int64     `json:"learnerId" db:"learner_id"`
	MentorID  int64     `json:"mentorId" db:"mentor_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Message is a polled note exchanged between the two participants of a request
type Message struct {
	ID        int64     `json:"id" db:"id"`
	RequestID int64     `json:"requestId" db:"request_id"`
	SenderID  int64     `json:"senderId" db:"sender_id"`
	Body      string    `json:"message" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
