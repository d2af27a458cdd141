package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

var (
	_ repositories.AccountRepository     = (*accountRepo)(nil)
	_ repositories.TransactionRepository = (*transactionRepo)(nil)
	_ repositories.RedemptionRepository  = (*redemptionRepo)(nil)
	_ repositories.SkillRepository       = (*skillRepo)(nil)
)

type accountRepo struct{ s *Store }

func (r *accountRepo) Create(ctx context.Context, account *models.Account) error {
	return r.s.write(ctx, func(t *tables) error {
		email := strings.ToLower(account.Email)
		if _, exists := t.emailIndex[email]; exists {
			return apperrors.ErrEmailAlreadyExists
		}
		account.ID = t.nextID("accounts")
		account.CreatedAt = r.s.now()
		if account.LastActiveAt.IsZero() {
			account.LastActiveAt = account.CreatedAt
		}
		stored := *account
		stored.SkillsOffered, stored.SkillsWanted = nil, nil
		t.accounts[account.ID] = stored
		t.emailIndex[email] = account.ID
		return nil
	})
}

func (r *accountRepo) GetByID(_ context.Context, id int64) (*models.Account, error) {
	var (
		account models.Account
		ok      bool
	)
	r.s.read(func(t *tables) { account, ok = t.accounts[id] })
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &account, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var (
		id int64
		ok bool
	)
	r.s.read(func(t *tables) { id, ok = t.emailIndex[strings.ToLower(email)] })
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *accountRepo) List(_ context.Context) ([]*models.Account, error) {
	accounts := r.all()
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *accountRepo) TopByCoins(_ context.Context, limit int) ([]*models.Account, error) {
	accounts := r.all()
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Coins != accounts[j].Coins {
			return accounts[i].Coins > accounts[j].Coins
		}
		return accounts[i].ID < accounts[j].ID
	})
	if limit > 0 && len(accounts) > limit {
		accounts = accounts[:limit]
	}
	return accounts, nil
}

func (r *accountRepo) all() []*models.Account {
	accounts := make([]*models.Account, 0)
	r.s.read(func(t *tables) {
		for _, a := range t.accounts {
			a := a
			accounts = append(accounts, &a)
		}
	})
	return accounts
}

func (r *accountRepo) update(ctx context.Context, id int64, fn func(a *models.Account)) error {
	return r.s.write(ctx, func(t *tables) error {
		a, ok := t.accounts[id]
		if !ok {
			return apperrors.ErrAccountNotFound
		}
		fn(&a)
		t.accounts[id] = a
		return nil
	})
}

func (r *accountRepo) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	return r.update(ctx, id, func(a *models.Account) { a.LastActiveAt = at })
}

func (r *accountRepo) AddRating(ctx context.Context, id int64, rating int) (float64, error) {
	var average float64
	err := r.update(ctx, id, func(a *models.Account) {
		a.AddRating(rating)
		average = a.AverageRating
	})
	return average, err
}

func (r *accountRepo) SetHighlighted(ctx context.Context, id int64, highlighted bool) error {
	return r.update(ctx, id, func(a *models.Account) { a.Highlighted = highlighted })
}

func (r *accountRepo) ApplyDelta(ctx context.Context, id int64, delta int) (int, error) {
	var balance int
	err := r.s.write(ctx, func(t *tables) error {
		a, ok := t.accounts[id]
		if !ok {
			return apperrors.ErrAccountNotFound
		}
		if a.Coins+delta < 0 {
			return apperrors.ErrInsufficientFunds
		}
		a.Coins += delta
		t.accounts[id] = a
		balance = a.Coins
		return nil
	})
	return balance, err
}

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	return r.s.write(ctx, func(t *tables) error {
		tx.ID = t.nextID("transactions")
		tx.CreatedAt = r.s.now()
		t.transactions[tx.ID] = *tx
		return nil
	})
}

func (r *transactionRepo) ListByAccount(_ context.Context, accountID int64) ([]*models.Transaction, error) {
	txs := make([]*models.Transaction, 0)
	r.s.read(func(t *tables) {
		for _, tx := range t.transactions {
			if tx.AccountID == accountID {
				tx := tx
				txs = append(txs, &tx)
			}
		}
	})
	// IDs grow with insertion, so descending ID is newest first
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID > txs[j].ID })
	return txs, nil
}

type redemptionRepo struct{ s *Store }

func (r *redemptionRepo) Create(ctx context.Context, redemption *models.Redemption) error {
	return r.s.write(ctx, func(t *tables) error {
		redemption.ID = t.nextID("redemptions")
		redemption.CreatedAt = r.s.now()
		t.redemptions[redemption.ID] = *redemption
		return nil
	})
}

func (r *redemptionRepo) ListByAccount(_ context.Context, accountID int64) ([]*models.Redemption, error) {
	list := make([]*models.Redemption, 0)
	r.s.read(func(t *tables) {
		for _, rd := range t.redemptions {
			if rd.AccountID == accountID {
				rd := rd
				list = append(list, &rd)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

type skillRepo struct{ s *Store }

func (r *skillRepo) Create(ctx context.Context, skill *models.Skill) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.accounts[skill.OwnerID]; !ok {
			return apperrors.ErrAccountNotFound
		}
		skill.ID = t.nextID("skills")
		skill.CreatedAt = r.s.now()
		t.skills[skill.ID] = *skill
		return nil
	})
}

func (r *skillRepo) GetByID(_ context.Context, id int64) (*models.Skill, error) {
	var (
		skill models.Skill
		ok    bool
	)
	r.s.read(func(t *tables) { skill, ok = t.skills[id] })
	if !ok {
		return nil, apperrors.ErrSkillNotFound
	}
	return &skill, nil
}

func (r *skillRepo) ListByOwner(_ context.Context, ownerID int64) ([]*models.Skill, error) {
	skills := r.filter(func(s *models.Skill) bool { return s.OwnerID == ownerID })
	sort.Slice(skills, func(i, j int) bool { return skills[i].ID < skills[j].ID })
	return skills, nil
}

func (r *skillRepo) Search(_ context.Context, filter repositories.SkillFilter) ([]*models.Skill, error) {
	needle := strings.ToLower(filter.NameContains)
	skills := r.filter(func(s *models.Skill) bool {
		if needle != "" && !strings.Contains(strings.ToLower(s.Name), needle) {
			return false
		}
		if filter.Category != "" && s.Category != filter.Category {
			return false
		}
		return filter.Direction == "" || s.Direction == filter.Direction
	})
	sort.Slice(skills, func(i, j int) bool { return skills[i].ID > skills[j].ID })
	return skills, nil
}

func (r *skillRepo) filter(keep func(s *models.Skill) bool) []*models.Skill {
	skills := make([]*models.Skill, 0)
	r.s.read(func(t *tables) {
		for _, s := range t.skills {
			s := s
			if keep(&s) {
				skills = append(skills, &s)
			}
		}
	})
	return skills
}
