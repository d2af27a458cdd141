package auth

import (
	"context"
	"fmt"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

// AuthorizationService answers "may this account do that" questions for the services
type AuthorizationService struct {
	communityRepo repositories.CommunityRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(communityRepo repositories.CommunityRepository) *AuthorizationService {
	return &AuthorizationService{
		communityRepo: communityRepo,
	}
}

// RequireMentor fails unless the actor is the request's mentor
func RequireMentor(req *models.MentorshipRequest, actorID int64) error {
	if req.MentorID != actorID {
		return fmt.Errorf("%w: only the mentor can do this", apperrors.ErrPermissionDenied)
	}
	return nil
}

// RequireLearner fails unless the actor is the request's learner
func RequireLearner(req *models.MentorshipRequest, actorID int64) error {
	if req.LearnerID != actorID {
		return fmt.Errorf("%w: only the learner can do this", apperrors.ErrPermissionDenied)
	}
	return nil
}

// RequireParticipant fails unless the actor is the learner or the mentor
func RequireParticipant(req *models.MentorshipRequest, actorID int64) error {
	if !req.IsParticipant(actorID) {
		return apperrors.ErrNotParticipant
	}
	return nil
}

// RequireCreator fails unless the actor created the community
func RequireCreator(community *models.Community, actorID int64) error {
	if community.CreatedBy != actorID {
		return apperrors.ErrNotCreator
	}
	return nil
}

// RequireMember fails unless the account belongs to the community
func (s *AuthorizationService) RequireMember(ctx context.Context, communityID, accountID int64) error {
	isMember, err := s.communityRepo.IsMember(ctx, communityID, accountID)
	if err != nil {
		logger.Error().Err(err).Int64("communityID", communityID).Int64("accountID", accountID).Msg("Error checking community membership")
		return err
	}
	if !isMember {
		return apperrors.ErrNotMember
	}
	return nil
}
