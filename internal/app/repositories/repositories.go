package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/db"
)

// TxManager runs a unit of work atomically. Repositories called with the context
// passed to fn take part in the same unit.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AccountRepository defines account persistence. ApplyDelta is the only way a balance changes.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	TopByCoins(ctx context.Context, limit int) ([]*models.Account, error)
	TouchLastActive(ctx context.Context, id int64, at time.Time) error
	// AddRating folds one rating into the stored average in a single write and returns the new average
	AddRating(ctx context.Context, id int64, rating int) (float64, error)
	SetHighlighted(ctx context.Context, id int64, highlighted bool) error
	// ApplyDelta adds delta to the balance and returns the new balance. A delta that would
	// take the balance below zero fails with apperrors.ErrInsufficientFunds and changes nothing.
	ApplyDelta(ctx context.Context, id int64, delta int) (int, error)
}

// TransactionRepository stores the append-only ledger
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	ListByAccount(ctx context.Context, accountID int64) ([]*models.Transaction, error)
}

// SkillFilter narrows a skill search. Zero values match everything.
type SkillFilter struct {
	NameContains string
	Category     models.SkillCategory
	Direction    models.SkillDirection
}

// SkillRepository defines skill catalog persistence
type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	GetByID(ctx context.Context, id int64) (*models.Skill, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Skill, error)
	Search(ctx context.Context, filter SkillFilter) ([]*models.Skill, error)
}

// RequestRepository defines mentorship request persistence
type RequestRepository interface {
	Create(ctx context.Context, req *models.MentorshipRequest) error
	GetByID(ctx context.Context, id int64) (*models.MentorshipRequest, error)
	// Update stores req only if the stored status still equals expected,
	// otherwise it fails with apperrors.ErrInvalidTransition.
	Update(ctx context.Context, req *models.MentorshipRequest, expected models.RequestStatus) error
	ListByLearner(ctx context.Context, learnerID int64) ([]*models.MentorshipRequest, error)
	ListByMentor(ctx context.Context, mentorID int64) ([]*models.MentorshipRequest, error)
}

// FeedbackRepository defines feedback persistence. One row per request.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByRequest(ctx context.Context, requestID int64) (*models.Feedback, error)
	ListByMentor(ctx context.Context, mentorID int64) ([]*models.Feedback, error)
}

// MessageRepository defines request message persistence
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByRequest(ctx context.Context, requestID int64) ([]*models.Message, error)
}

// RedemptionRepository defines reward redemption persistence
type RedemptionRepository interface {
	Create(ctx context.Context, redemption *models.Redemption) error
	ListByAccount(ctx context.Context, accountID int64) ([]*models.Redemption, error)
}

// CommunityRepository defines community board persistence
type CommunityRepository interface {
	Create(ctx context.Context, community *models.Community) error
	GetByID(ctx context.Context, id int64) (*models.Community, error)
	List(ctx context.Context, createdBy *int64) ([]*models.Community, error)
	AddMember(ctx context.Context, communityID, accountID int64) error
	IsMember(ctx context.Context, communityID, accountID int64) (bool, error)
	ListMembers(ctx context.Context, communityID int64) ([]*models.CommunityMember, error)
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	ListPosts(ctx context.Context, communityID int64) ([]*models.Post, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	SetChallenge(ctx context.Context, communityID int64, challenge *models.Challenge) error
}

// ExperienceRepository defines experience board persistence. Reactions are a set keyed by
// (experience, account) so an account holds at most one reaction per experience.
type ExperienceRepository interface {
	Create(ctx context.Context, exp *models.Experience) error
	GetByID(ctx context.Context, id int64) (*models.Experience, error)
	List(ctx context.Context, expType models.ExperienceType) ([]*models.Experience, error)
	GetReaction(ctx context.Context, experienceID, accountID int64) (models.Reaction, error)
	// SetReaction stores the reaction, or removes it when reaction is empty
	SetReaction(ctx context.Context, experienceID, accountID int64, reaction models.Reaction) error
}

// StartupRepository defines startup persistence
type StartupRepository interface {
	Create(ctx context.Context, startup *models.Startup) error
	GetByID(ctx context.Context, id int64) (*models.Startup, error)
	List(ctx context.Context, limit int) ([]*models.Startup, error)
	AddSponsorship(ctx context.Context, startupID int64, amount int) error
	// UpsertRating records the account's stars, replacing any earlier rating
	UpsertRating(ctx context.Context, startupID, accountID int64, stars int) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Tx           TxManager
	Accounts     AccountRepository
	Transactions TransactionRepository
	Skills       SkillRepository
	Requests     RequestRepository
	Feedback     FeedbackRepository
	Messages     MessageRepository
	Redemptions  RedemptionRepository
	Communities  CommunityRepository
	Experiences  ExperienceRepository
	Startups     StartupRepository
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		Tx:           database,
		Accounts:     NewAccountRepository(database),
		Transactions: NewTransactionRepository(database),
		Skills:       NewSkillRepository(database),
		Requests:     NewRequestRepository(database),
		Feedback:     NewFeedbackRepository(database),
		Messages:     NewMessageRepository(database),
		Redemptions:  NewRedemptionRepository(database),
		Communities:  NewCommunityRepository(database),
		Experiences:  NewExperienceRepository(database),
		Startups:     NewStartupRepository(database),
	}
}

// statementBuilder is shared by every PostgreSQL repository
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
