package dto

import "github.com/yigit/skillswap/internal/app/models"

// CreateRequestRequest opens a mentorship request
type CreateRequestRequest struct {
	MentorID int64  `json:"mentorId" binding:"required,gt=0"`
	SkillID  int64  `json:"skillId" binding:"required,gt=0"`
	Message  string `json:"message" binding:"max=1000"`
}

// UpdateNotesRequest replaces the session notes of an accepted request
type UpdateNotesRequest struct {
	SessionNotes string `json:"sessionNotes" binding:"max=5000"`
}

// QuizQuestionRequest is one question of an attached quiz
type QuizQuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswer *int     `json:"correctAnswer" binding:"required,min=0"`
}

// AttachQuizRequest attaches a quiz to an accepted request
type AttachQuizRequest struct {
	Questions []QuizQuestionRequest `json:"questions" binding:"required,min=1,max=5,dive"`
}

// ToQuiz converts the request into an enabled quiz
func (r *AttachQuizRequest) ToQuiz() *models.Quiz {
	quiz := &models.Quiz{Enabled: true, Questions: make([]models.QuizQuestion, 0, len(r.Questions))}
	for _, q := range r.Questions {
		question := models.QuizQuestion{Text: q.Text, Options: q.Options, CorrectAnswer: -1}
		if q.CorrectAnswer != nil {
			question.CorrectAnswer = *q.CorrectAnswer
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz
}

// SubmitQuizRequest holds the learner's answer indexes in question order
type SubmitQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// QuizResult is the outcome of a quiz submission
type QuizResult struct {
	Score   int                       `json:"score"`
	Total   int                       `json:"total"`
	Passed  bool                      `json:"passed"`
	Request *models.MentorshipRequest `json:"request"`
}

// PostMessageRequest posts a message on a request
type PostMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// RequestListResponse splits an account's requests by role
type RequestListResponse struct {
	Outgoing []*models.MentorshipRequest `json:"outgoing"`
	Incoming []*models.MentorshipRequest `json:"incoming"`
}

// SubmitFeedbackRequest reviews a completed request
type SubmitFeedbackRequest struct {
	RequestID int64  `json:"requestId" binding:"required,gt=0"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=2000"`
}

// MentorFeedbackResponse lists a mentor's reviews with the aggregate
type MentorFeedbackResponse struct {
	Feedback      []*models.Feedback `json:"feedback"`
	Count         int                `json:"count"`
	AverageRating float64            `json:"averageRating"`
}
