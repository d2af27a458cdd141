package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

var (
	_ repositories.CommunityRepository  = (*communityRepo)(nil)
	_ repositories.ExperienceRepository = (*experienceRepo)(nil)
	_ repositories.StartupRepository    = (*startupRepo)(nil)
)

type communityRepo struct{ s *Store }

func cloneCommunity(c models.Community) models.Community {
	if c.Challenge != nil {
		challenge := *c.Challenge
		c.Challenge = &challenge
	}
	c.Members, c.Posts = nil, nil
	return c
}

func (r *communityRepo) Create(ctx context.Context, community *models.Community) error {
	return r.s.write(ctx, func(t *tables) error {
		key := strings.ToLower(community.Name)
		if _, exists := t.communityIdx[key]; exists {
			return apperrors.ErrCommunityAlreadyExists
		}
		community.ID = t.nextID("communities")
		community.CreatedAt = r.s.now()
		t.communities[community.ID] = cloneCommunity(*community)
		t.communityIdx[key] = community.ID
		return nil
	})
}

func (r *communityRepo) GetByID(_ context.Context, id int64) (*models.Community, error) {
	var (
		c  models.Community
		ok bool
	)
	r.s.read(func(t *tables) { c, ok = t.communities[id] })
	if !ok {
		return nil, apperrors.ErrCommunityNotFound
	}
	c = cloneCommunity(c)
	return &c, nil
}

func (r *communityRepo) List(_ context.Context, createdBy *int64) ([]*models.Community, error) {
	list := make([]*models.Community, 0)
	r.s.read(func(t *tables) {
		for _, c := range t.communities {
			if createdBy != nil && c.CreatedBy != *createdBy {
				continue
			}
			c := cloneCommunity(c)
			list = append(list, &c)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *communityRepo) AddMember(ctx context.Context, communityID, accountID int64) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.communities[communityID]; !ok {
			return apperrors.ErrCommunityNotFound
		}
		account, ok := t.accounts[accountID]
		if !ok {
			return apperrors.ErrAccountNotFound
		}
		key := memberKey{communityID, accountID}
		if _, exists := t.members[key]; exists {
			return apperrors.ErrAlreadyMember
		}
		t.members[key] = models.CommunityMember{
			CommunityID: communityID,
			AccountID:   accountID,
			Name:        account.Name,
			JoinedAt:    r.s.now(),
		}
		return nil
	})
}

func (r *communityRepo) IsMember(_ context.Context, communityID, accountID int64) (bool, error) {
	var ok bool
	r.s.read(func(t *tables) { _, ok = t.members[memberKey{communityID, accountID}] })
	return ok, nil
}

func (r *communityRepo) ListMembers(_ context.Context, communityID int64) ([]*models.CommunityMember, error) {
	list := make([]*models.CommunityMember, 0)
	r.s.read(func(t *tables) {
		for key, m := range t.members {
			if key.communityID == communityID {
				m := m
				list = append(list, &m)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].JoinedAt.Equal(list[j].JoinedAt) {
			return list[i].JoinedAt.Before(list[j].JoinedAt)
		}
		return list[i].AccountID < list[j].AccountID
	})
	return list, nil
}

func (r *communityRepo) CreatePost(ctx context.Context, post *models.Post) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.communities[post.CommunityID]; !ok {
			return apperrors.ErrCommunityNotFound
		}
		post.ID = t.nextID("posts")
		post.CreatedAt = r.s.now()
		post.Comments = make([]*models.Comment, 0)
		stored := *post
		stored.Comments = nil
		t.posts[post.ID] = stored
		return nil
	})
}

func (r *communityRepo) GetPost(_ context.Context, postID int64) (*models.Post, error) {
	var (
		p  models.Post
		ok bool
	)
	r.s.read(func(t *tables) { p, ok = t.posts[postID] })
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	p.Comments = make([]*models.Comment, 0)
	return &p, nil
}

func (r *communityRepo) ListPosts(_ context.Context, communityID int64) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	r.s.read(func(t *tables) {
		byID := make(map[int64]*models.Post)
		for _, p := range t.posts {
			if p.CommunityID != communityID {
				continue
			}
			p := p
			p.Comments = make([]*models.Comment, 0)
			posts = append(posts, &p)
			byID[p.ID] = &p
		}
		comments := make([]models.Comment, 0)
		for _, c := range t.comments {
			if _, ok := byID[c.PostID]; ok {
				comments = append(comments, c)
			}
		}
		sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
		for i := range comments {
			c := comments[i]
			byID[c.PostID].Comments = append(byID[c.PostID].Comments, &c)
		}
	})
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return posts, nil
}

func (r *communityRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.posts[comment.PostID]; !ok {
			return apperrors.ErrPostNotFound
		}
		comment.ID = t.nextID("comments")
		comment.CreatedAt = r.s.now()
		t.comments[comment.ID] = *comment
		return nil
	})
}

func (r *communityRepo) SetChallenge(ctx context.Context, communityID int64, challenge *models.Challenge) error {
	return r.s.write(ctx, func(t *tables) error {
		c, ok := t.communities[communityID]
		if !ok {
			return apperrors.ErrCommunityNotFound
		}
		copied := *challenge
		c.Challenge = &copied
		t.communities[communityID] = c
		return nil
	})
}

type experienceRepo struct{ s *Store }

// withCounts fills the reaction counts from the reaction set. Callers hold the read lock.
func withCounts(t *tables, e models.Experience) models.Experience {
	e.Likes, e.Dislikes = 0, 0
	for key, reaction := range t.reactions {
		if key.experienceID != e.ID {
			continue
		}
		switch reaction {
		case models.ReactionLike:
			e.Likes++
		case models.ReactionDislike:
			e.Dislikes++
		}
	}
	return e
}

func (r *experienceRepo) Create(ctx context.Context, exp *models.Experience) error {
	return r.s.write(ctx, func(t *tables) error {
		exp.ID = t.nextID("experiences")
		exp.CreatedAt = r.s.now()
		exp.Likes, exp.Dislikes = 0, 0
		t.experiences[exp.ID] = *exp
		return nil
	})
}

func (r *experienceRepo) GetByID(_ context.Context, id int64) (*models.Experience, error) {
	var (
		e  models.Experience
		ok bool
	)
	r.s.read(func(t *tables) {
		e, ok = t.experiences[id]
		if ok {
			e = withCounts(t, e)
		}
	})
	if !ok {
		return nil, apperrors.ErrExperienceNotFound
	}
	return &e, nil
}

func (r *experienceRepo) List(_ context.Context, expType models.ExperienceType) ([]*models.Experience, error) {
	list := make([]*models.Experience, 0)
	r.s.read(func(t *tables) {
		for _, e := range t.experiences {
			if expType != "" && e.Type != expType {
				continue
			}
			e := withCounts(t, e)
			list = append(list, &e)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *experienceRepo) GetReaction(_ context.Context, experienceID, accountID int64) (models.Reaction, error) {
	var reaction models.Reaction
	r.s.read(func(t *tables) { reaction = t.reactions[reactionKey{experienceID, accountID}] })
	return reaction, nil
}

func (r *experienceRepo) SetReaction(ctx context.Context, experienceID, accountID int64, reaction models.Reaction) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.experiences[experienceID]; !ok {
			return apperrors.ErrExperienceNotFound
		}
		key := reactionKey{experienceID, accountID}
		if reaction == "" {
			delete(t.reactions, key)
			return nil
		}
		t.reactions[key] = reaction
		return nil
	})
}

type startupRepo struct{ s *Store }

// withRatings fills the rating aggregate. Callers hold the read lock.
func withRatings(t *tables, s models.Startup) models.Startup {
	total, count := 0, 0
	for key, stars := range t.ratings {
		if key.startupID == s.ID {
			total += stars
			count++
		}
	}
	s.RatingCount = count
	s.AverageRating = 0
	if count > 0 {
		s.AverageRating = float64(total) / float64(count)
	}
	return s
}

func (r *startupRepo) Create(ctx context.Context, startup *models.Startup) error {
	return r.s.write(ctx, func(t *tables) error {
		startup.ID = t.nextID("startups")
		startup.CreatedAt = r.s.now()
		t.startups[startup.ID] = *startup
		return nil
	})
}

func (r *startupRepo) GetByID(_ context.Context, id int64) (*models.Startup, error) {
	var (
		s  models.Startup
		ok bool
	)
	r.s.read(func(t *tables) {
		s, ok = t.startups[id]
		if ok {
			s = withRatings(t, s)
		}
	})
	if !ok {
		return nil, apperrors.ErrStartupNotFound
	}
	return &s, nil
}

func (r *startupRepo) List(_ context.Context, limit int) ([]*models.Startup, error) {
	list := make([]*models.Startup, 0)
	r.s.read(func(t *tables) {
		for _, s := range t.startups {
			s := withRatings(t, s)
			list = append(list, &s)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].TotalSponsoredCoins != list[j].TotalSponsoredCoins {
			return list[i].TotalSponsoredCoins > list[j].TotalSponsoredCoins
		}
		if list[i].AverageRating != list[j].AverageRating {
			return list[i].AverageRating > list[j].AverageRating
		}
		return list[i].ID < list[j].ID
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *startupRepo) AddSponsorship(ctx context.Context, startupID int64, amount int) error {
	return r.s.write(ctx, func(t *tables) error {
		s, ok := t.startups[startupID]
		if !ok {
			return apperrors.ErrStartupNotFound
		}
		s.TotalSponsoredCoins += amount
		t.startups[startupID] = s
		return nil
	})
}

func (r *startupRepo) UpsertRating(ctx context.Context, startupID, accountID int64, stars int) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.startups[startupID]; !ok {
			return apperrors.ErrStartupNotFound
		}
		t.ratings[ratingKey{startupID, accountID}] = stars
		return nil
	})
}
