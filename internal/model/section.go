package model

import "time"

// Section is a named grouping of questions within a mock, ordered relative to
// its siblings. Position is 1-based and assigned at insert time.
type Section struct {
	ID        int       `json:"id"`
	MockID    int       `json:"mock_id"`
	Name      string    `json:"name"`
	Position  int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSectionRequest is the payload for adding a section to a mock.
type CreateSectionRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}
