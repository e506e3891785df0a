package model

import "time"

// Option is a single answer choice: a short label ("A", "B", ...) and the
// rich-markup body shown to the candidate.
type Option struct {
	Label  string `json:"label" binding:"required,min=1,max=10"`
	Markup string `json:"markup" binding:"required,min=1"`
}

// Question is a single multiple-choice item. It always belongs to a mock and
// optionally to one of its sections. Position is 1-based and counted
// independently per scope: (mock, section) when SectionID is set, the mock's
// unsectioned pool otherwise.
type Question struct {
	ID            int       `json:"id"`
	MockID        int       `json:"mock_id"`
	SectionID     *int      `json:"section_id,omitempty"`
	QuestionHTML  string    `json:"question_html"`
	Options       []Option  `json:"options"`
	CorrectOption string    `json:"correct_option"`
	SolutionHTML  string    `json:"solution_html,omitempty"`
	Position      int       `json:"order"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateQuestionRequest is the payload for adding a question to a mock.
type CreateQuestionRequest struct {
	SectionID     *int     `json:"section_id" binding:"omitempty,min=1"`
	QuestionHTML  string   `json:"question_html" binding:"required,min=1"`
	Options       []Option `json:"options" binding:"required,min=1,dive"`
	CorrectOption string   `json:"correct_option" binding:"required,min=1,max=10"`
	SolutionHTML  string   `json:"solution_html" binding:"omitempty"`
}
