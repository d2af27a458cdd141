// Package memory keeps every repository in process memory. It backs the memory
// database driver and the test suites.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/repositories"
)

type unitKey struct{}

type memberKey struct{ communityID, accountID int64 }

type reactionKey struct{ experienceID, accountID int64 }

type ratingKey struct{ startupID, accountID int64 }

// tables is the full data set. Entities are held by value so a shallow copy of the
// maps is a consistent snapshot.
type tables struct {
	accounts     map[int64]models.Account
	emailIndex   map[string]int64
	transactions map[int64]models.Transaction
	skills       map[int64]models.Skill
	requests     map[int64]models.MentorshipRequest
	feedback     map[int64]models.Feedback
	messages     map[int64]models.Message
	redemptions  map[int64]models.Redemption
	communities  map[int64]models.Community
	communityIdx map[string]int64
	members      map[memberKey]models.CommunityMember
	posts        map[int64]models.Post
	comments     map[int64]models.Comment
	experiences  map[int64]models.Experience
	reactions    map[reactionKey]models.Reaction
	startups     map[int64]models.Startup
	ratings      map[ratingKey]int
	seq          map[string]int64
}

func newTables() tables {
	return tables{
		accounts:     make(map[int64]models.Account),
		emailIndex:   make(map[string]int64),
		transactions: make(map[int64]models.Transaction),
		skills:       make(map[int64]models.Skill),
		requests:     make(map[int64]models.MentorshipRequest),
		feedback:     make(map[int64]models.Feedback),
		messages:     make(map[int64]models.Message),
		redemptions:  make(map[int64]models.Redemption),
		communities:  make(map[int64]models.Community),
		communityIdx: make(map[string]int64),
		members:      make(map[memberKey]models.CommunityMember),
		posts:        make(map[int64]models.Post),
		comments:     make(map[int64]models.Comment),
		experiences:  make(map[int64]models.Experience),
		reactions:    make(map[reactionKey]models.Reaction),
		startups:     make(map[int64]models.Startup),
		ratings:      make(map[ratingKey]int),
		seq:          make(map[string]int64),
	}
}

func (t tables) clone() tables {
	return tables{
		accounts:     maps.Clone(t.accounts),
		emailIndex:   maps.Clone(t.emailIndex),
		transactions: maps.Clone(t.transactions),
		skills:       maps.Clone(t.skills),
		requests:     maps.Clone(t.requests),
		feedback:     maps.Clone(t.feedback),
		messages:     maps.Clone(t.messages),
		redemptions:  maps.Clone(t.redemptions),
		communities:  maps.Clone(t.communities),
		communityIdx: maps.Clone(t.communityIdx),
		members:      maps.Clone(t.members),
		posts:        maps.Clone(t.posts),
		comments:     maps.Clone(t.comments),
		experiences:  maps.Clone(t.experiences),
		reactions:    maps.Clone(t.reactions),
		startups:     maps.Clone(t.startups),
		ratings:      maps.Clone(t.ratings),
		seq:          maps.Clone(t.seq),
	}
}

// Store is a thread-safe in-memory store implementation.
// Writes are serialized with units of work, and a failed unit restores the
// snapshot taken when it started.
type Store struct {
	mu   sync.RWMutex
	unit sync.Mutex
	data tables
	now  func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		data: newTables(),
		now:  time.Now,
	}
}

// NewRepositories builds every repository on top of a fresh store
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Tx:           s,
		Accounts:     &accountRepo{s},
		Transactions: &transactionRepo{s},
		Skills:       &skillRepo{s},
		Requests:     &requestRepo{s},
		Feedback:     &feedbackRepo{s},
		Messages:     &messageRepo{s},
		Redemptions:  &redemptionRepo{s},
		Communities:  &communityRepo{s},
		Experiences:  &experienceRepo{s},
		Startups:     &startupRepo{s},
	}
}

// WithinTransaction runs fn as one unit of work. Nested calls join the open unit.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inUnit(ctx) {
		return fn(ctx)
	}

	s.unit.Lock()
	defer s.unit.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	committed := false
	defer func() {
		if !committed {
			s.mu.Lock()
			s.data = snapshot
			s.mu.Unlock()
		}
	}()

	if err := fn(context.WithValue(ctx, unitKey{}, true)); err != nil {
		return err
	}
	committed = true
	return nil
}

func inUnit(ctx context.Context) bool {
	v, _ := ctx.Value(unitKey{}).(bool)
	return v
}

// write applies fn under the write lock. Outside a unit it also takes the unit
// lock so it cannot interleave with a unit that may later roll back.
func (s *Store) write(ctx context.Context, fn func(t *tables) error) error {
	if !inUnit(ctx) {
		s.unit.Lock()
		defer s.unit.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

func (s *Store) read(fn func(t *tables)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

func (t *tables) nextID(table string) int64 {
	t.seq[table]++
	return t.seq[table]
}
