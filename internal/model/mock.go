package model

import "time"

// Mock represents a mock test shell: name, category, timing and marking scheme.
// Mark values travel as exact decimal strings; the store keeps them as NUMERIC
// so repeated reads never drift the way float64 would.
type Mock struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	TestName         string    `json:"test_name"`
	ExamType         string    `json:"exam_type"`
	ExamTimeMinutes  int       `json:"exam_time_minutes"`
	TotalQuestions   int       `json:"total_questions"`
	MarksPerQuestion string    `json:"marks_per_question"`
	NegativeMarks    string    `json:"negative_marks"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateMockRequest is the payload for creating a new mock test.
type CreateMockRequest struct {
	TestName         string `json:"test_name" binding:"required,min=1,max=255"`
	ExamType         string `json:"exam_type" binding:"required,min=1,max=100"`
	ExamTimeMinutes  int    `json:"exam_time_minutes" binding:"required,min=1,max=600"`
	TotalQuestions   int    `json:"total_questions" binding:"required,min=1,max=1000"`
	MarksPerQuestion string `json:"marks_per_question" binding:"required,numeric"`
	NegativeMarks    string `json:"negative_marks" binding:"required,numeric"`
}

// UpdateMockRequest is the payload for updating an existing mock test.
type UpdateMockRequest struct {
	TestName         string `json:"test_name" binding:"omitempty,min=1,max=255"`
	ExamType         string `json:"exam_type" binding:"omitempty,min=1,max=100"`
	ExamTimeMinutes  int    `json:"exam_time_minutes" binding:"omitempty,min=1,max=600"`
	TotalQuestions   int    `json:"total_questions" binding:"omitempty,min=1,max=1000"`
	MarksPerQuestion string `json:"marks_per_question" binding:"omitempty,numeric"`
	NegativeMarks    string `json:"negative_marks" binding:"omitempty,numeric"`
}

// EditorView is the assembled editing payload for a mock: the shell plus all
// sections and questions, each scope ordered by position. It is cached in
// Redis and invalidated whenever a section or question is added.
type EditorView struct {
	Mock      Mock       `json:"mock"`
	Sections  []Section  `json:"sections"`
	Questions []Question `json:"questions"`
}
