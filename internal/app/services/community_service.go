package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/auth"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/config"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

// CommunityService defines the interface for community operations
type CommunityService interface {
	Create(ctx context.Context, actorID int64, req *dto.CreateCommunityRequest) (*models.Community, error)
	List(ctx context.Context, filter *dto.CommunityFilterRequest) ([]*models.Community, error)
	Get(ctx context.Context, id int64) (*models.Community, error)
	Join(ctx context.Context, actorID, communityID int64) (*models.Community, error)
	CreatePost(ctx context.Context, actorID, communityID int64, content string) (*models.Post, error)
	AddComment(ctx context.Context, actorID, communityID, postID int64, content string) (*models.Comment, error)
	SetChallenge(ctx context.Context, actorID, communityID int64, req *dto.SetChallengeRequest) (*models.Community, error)
}

// communityServiceImpl implements CommunityService
type communityServiceImpl struct {
	tx            repositories.TxManager
	communityRepo repositories.CommunityRepository
	ledger        LedgerService
	authzService  *auth.AuthorizationService
	policy        config.LedgerConfig
	logger        zerolog.Logger
	now           func() time.Time
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(
	repos *repositories.Repositories,
	ledger LedgerService,
	authzService *auth.AuthorizationService,
	policy config.LedgerConfig,
	logger zerolog.Logger,
) CommunityService {
	return &communityServiceImpl{
		tx:            repos.Tx,
		communityRepo: repos.Communities,
		ledger:        ledger,
		authzService:  authzService,
		policy:        policy,
		logger:        logger,
		now:           time.Now,
	}
}

// Create charges the creation fee, stores the community and makes the creator its first member
func (s *communityServiceImpl) Create(ctx context.Context, actorID int64, req *dto.CreateCommunityRequest) (*models.Community, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("community name cannot be empty")
	}
	category := models.CommunityCategory(strings.TrimSpace(req.Category))
	if !category.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid community category %q", req.Category))
	}

	community := &models.Community{
		Name:         name,
		Category:     category,
		Description:  strings.TrimSpace(req.Description),
		CreatedBy:    actorID,
		CreationCost: s.policy.CommunityCreationCost,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.communityRepo.Create(ctx, community); err != nil {
			return err
		}
		if community.CreationCost > 0 {
			if _, err := s.ledger.Debit(ctx, actorID, community.CreationCost, "Created community: "+community.Name); err != nil {
				return err
			}
		}
		return s.communityRepo.AddMember(ctx, community.ID, actorID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("communityID", community.ID).
		Int64("creatorID", actorID).
		Str("name", community.Name).
		Msg("Community created")

	return s.Get(ctx, community.ID)
}

// List returns communities, newest first, optionally only those created by one account
func (s *communityServiceImpl) List(ctx context.Context, filter *dto.CommunityFilterRequest) ([]*models.Community, error) {
	var createdBy *int64
	if filter != nil {
		createdBy = filter.CreatedBy
	}
	communities, err := s.communityRepo.List(ctx, createdBy)
	if err != nil {
		return nil, fmt.Errorf("error listing communities: %w", err)
	}
	return communities, nil
}

// Get returns a community with its members and posts
func (s *communityServiceImpl) Get(ctx context.Context, id int64) (*models.Community, error) {
	community, err := s.communityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if community.Members, err = s.communityRepo.ListMembers(ctx, id); err != nil {
		return nil, fmt.Errorf("error listing members: %w", err)
	}
	if community.Posts, err = s.communityRepo.ListPosts(ctx, id); err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return community, nil
}

// Join adds the actor to the community
func (s *communityServiceImpl) Join(ctx context.Context, actorID, communityID int64) (*models.Community, error) {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}
	if err := s.communityRepo.AddMember(ctx, communityID, actorID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("communityID", communityID).Int64("accountID", actorID).Msg("Joined community")
	return s.Get(ctx, communityID)
}

// CreatePost adds a post. Only members may post.
func (s *communityServiceImpl) CreatePost(ctx context.Context, actorID, communityID int64, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("post content cannot be empty")
	}
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}
	if err := s.authzService.RequireMember(ctx, communityID, actorID); err != nil {
		return nil, err
	}

	post := &models.Post{CommunityID: communityID, AuthorID: actorID, Content: content}
	if err := s.communityRepo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return post, nil
}

// AddComment replies to a post. Only members of the post's community may comment.
func (s *communityServiceImpl) AddComment(ctx context.Context, actorID, communityID, postID int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("comment cannot be empty")
	}

	post, err := s.communityRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.CommunityID != communityID {
		return nil, apperrors.ErrPostNotFound
	}
	if err := s.authzService.RequireMember(ctx, communityID, actorID); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, AuthorID: actorID, Content: content}
	if err := s.communityRepo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}
	return comment, nil
}

// SetChallenge replaces the community challenge. Only the creator may set it.
func (s *communityServiceImpl) SetChallenge(ctx context.Context, actorID, communityID int64, req *dto.SetChallengeRequest) (*models.Community, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("challenge title cannot be empty")
	}

	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireCreator(community, actorID); err != nil {
		return nil, err
	}

	challenge := &models.Challenge{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.now(),
	}
	if err := s.communityRepo.SetChallenge(ctx, communityID, challenge); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("communityID", communityID).Str("title", title).Msg("Community challenge set")
	return s.Get(ctx, communityID)
}
