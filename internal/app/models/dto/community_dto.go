package dto

// --- Request DTOs ---

// CreateCommunityRequest represents community creation data
type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Category    string `json:"category" binding:"required,communitycategory"`
	Description string `json:"description" binding:"max=2000"`
}

// CommunityFilterRequest represents community filter parameters
type CommunityFilterRequest struct {
	CreatedBy *int64 `form:"createdBy"`
}

// CreatePostRequest represents a new community post
type CreatePostRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// CreateCommentRequest represents a comment on a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// SetChallengeRequest replaces the community challenge
type SetChallengeRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}
