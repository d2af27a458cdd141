package models

import "time"

// CommunityCategory is the topic of a community
type CommunityCategory string

const (
	CommunityC     CommunityCategory = "C"
	CommunityCPP   CommunityCategory = "C++"
	CommunityDSA   CommunityCategory = "DSA"
	CommunityWeb   CommunityCategory = "Web Development"
	CommunityML    CommunityCategory = "Machine Learning"
	CommunityOther CommunityCategory = "Other"
)

// Valid reports whether c is a known community category
func (c CommunityCategory) Valid() bool {
	switch c {
	case CommunityC, CommunityCPP, CommunityDSA, CommunityWeb, CommunityML, CommunityOther:
		return true
	}
	return false
}

// Community is a topic board. Only members may post or comment.
type Community struct {
	ID           int64             `json:"id" db:"id"`
	Name         string            `json:"name" db:"name"`
	Category     CommunityCategory `json:"category" db:"category"`
	Description  string            `json:"description" db:"description"`
	CreatedBy    int64             `json:"createdBy" db:"created_by"`
	CreationCost int               `json:"creationCost" db:"creation_cost"`
	Challenge    *Challenge        `json:"currentChallenge,omitempty" db:"challenge"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at"`

	// Related entities
	Members []*CommunityMember `json:"members,omitempty"`
	Posts   []*Post            `json:"posts,omitempty"`
}

// Challenge is the creator-set prompt shown on the community page
type Challenge struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CommunityMember represents an account participating in a community
type CommunityMember struct {
	CommunityID int64     `json:"communityId" db:"community_id"`
	AccountID   int64     `json:"userId" db:"account_id"`
	Name        string    `json:"name" db:"name"`
	JoinedAt    time.Time `json:"joinedAt" db:"joined_at"`
}

// Post is a member's message on a community board
type Post struct {
	ID          int64      `json:"id" db:"id"`
	CommunityID int64      `json:"communityId" db:"community_id"`
	AuthorID    int64      `json:"authorId" db:"author_id"`
	Content     string     `json:"content" db:"content"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	Comments    []*Comment `json:"comments"`
}

// Comment replies to a post
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
