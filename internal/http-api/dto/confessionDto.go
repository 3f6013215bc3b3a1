package dto

// CreateConfessionRequest for posting a new confession
type CreateConfessionRequest struct {
	Text        string `json:"text" binding:"required,max=5000"`
	Category    string `json:"category" binding:"required,max=100"`
	IsAnonymous *bool  `json:"is_anonymous"`
}

// UpdateConfessionRequest for partial updates; absent fields stay untouched
type UpdateConfessionRequest struct {
	Text        *string `json:"text" binding:"omitempty,max=5000"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	IsAnonymous *bool   `json:"is_anonymous"`
}
