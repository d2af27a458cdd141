package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/recommendation"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/cache"
	"github.com/yigit/skillswap/internal/pkg/metrics"
)

// RecommendationService suggests mentors for a learner
type RecommendationService interface {
	Recommend(ctx context.Context, learnerID int64) ([]*dto.RecommendationResponse, error)
}

// recommendationServiceImpl implements RecommendationService
type recommendationServiceImpl struct {
	accountRepo repositories.AccountRepository
	skillRepo   repositories.SkillRepository
	cache       cache.Cache
	ttl         time.Duration
	metrics     *metrics.Manager
	logger      zerolog.Logger
	now         func() time.Time
}

// NewRecommendationService creates a new RecommendationService. A nil cache disables caching.
func NewRecommendationService(
	accountRepo repositories.AccountRepository,
	skillRepo repositories.SkillRepository,
	resultCache cache.Cache,
	ttl time.Duration,
	metricsManager *metrics.Manager,
	logger zerolog.Logger,
) RecommendationService {
	if resultCache == nil {
		resultCache = cache.NewNoop()
	}
	return &recommendationServiceImpl{
		accountRepo: accountRepo,
		skillRepo:   skillRepo,
		cache:       resultCache,
		ttl:         ttl,
		metrics:     metricsManager,
		logger:      logger,
		now:         time.Now,
	}
}

func recommendationKey(learnerID int64) string {
	return fmt.Sprintf("recommendations:%d", learnerID)
}

// Recommend ranks every other account that offers at least one skill and returns the top five
func (s *recommendationServiceImpl) Recommend(ctx context.Context, learnerID int64) ([]*dto.RecommendationResponse, error) {
	var cached []*dto.RecommendationResponse
	switch err := s.cache.Get(ctx, recommendationKey(learnerID), &cached); {
	case err == nil:
		s.metrics.RecordCacheLookup(true)
		return cached, nil
	case !errors.Is(err, cache.ErrMiss):
		s.logger.Warn().Err(err).Int64("learnerID", learnerID).Msg("Recommendation cache read failed")
	}
	s.metrics.RecordCacheLookup(false)

	var (
		learnerSkills []*models.Skill
		accounts      []*models.Account
		offered       []*models.Skill
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.accountRepo.GetByID(gctx, learnerID); err != nil {
			return err
		}
		var err error
		learnerSkills, err = s.skillRepo.ListByOwner(gctx, learnerID)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.accountRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		offered, err = s.skillRepo.Search(gctx, repositories.SkillFilter{Direction: models.DirectionOffered})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	wanted := make([]string, 0)
	for _, skill := range learnerSkills {
		if skill.Direction == models.DirectionWanted {
			wanted = append(wanted, skill.Name)
		}
	}

	offeredBy := make(map[int64][]string)
	for _, skill := range offered {
		offeredBy[skill.OwnerID] = append(offeredBy[skill.OwnerID], skill.Name)
	}

	byID := make(map[int64]*models.Account, len(accounts))
	candidates := make([]recommendation.Candidate, 0, len(offeredBy))
	for _, account := range accounts {
		names, ok := offeredBy[account.ID]
		if account.ID == learnerID || !ok {
			continue
		}
		byID[account.ID] = account
		candidates = append(candidates, recommendation.Candidate{
			AccountID:     account.ID,
			OfferedSkills: names,
			AverageRating: account.AverageRating,
			LastActiveAt:  account.LastActiveAt,
			Coins:         account.Coins,
		})
	}

	ranked := recommendation.Rank(wanted, candidates, s.now(), recommendation.DefaultLimit)
	results := make([]*dto.RecommendationResponse, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, &dto.RecommendationResponse{
			Mentor:        dto.NewAccountSummary(byID[r.AccountID]),
			Score:         r.Score,
			MatchedSkills: r.MatchedSkills,
		})
	}

	if err := s.cache.Set(ctx, recommendationKey(learnerID), results, s.ttl); err != nil {
		s.logger.Warn().Err(err).Int64("learnerID", learnerID).Msg("Recommendation cache write failed")
	}

	s.logger.Debug().
		Int64("learnerID", learnerID).
		Int("candidates", len(candidates)).
		Int("returned", len(results)).
		Msg("Recommendations computed")

	return results, nil
}
