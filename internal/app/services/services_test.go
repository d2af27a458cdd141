package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appAuth "github.com/yigit/skillswap/internal/app/auth"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/app/repositories/memory"
	"github.com/yigit/skillswap/internal/config"
	"github.com/yigit/skillswap/internal/pkg/auth"
	"github.com/yigit/skillswap/internal/pkg/email"
)

// testEnv wires every service on a fresh in-memory store
type testEnv struct {
	ctx         context.Context
	policy      config.LedgerConfig
	repos       *repositories.Repositories
	ledger      LedgerService
	auth        *AuthService
	users       UserService
	skills      SkillService
	mentorship  MentorshipService
	feedback    FeedbackService
	recs        RecommendationService
	redeem      RedeemService
	communities CommunityService
	experiences ExperienceService
	startups    StartupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost

	lgr := zerolog.Nop()
	policy := config.DefaultLedgerConfig()
	repos := memory.NewRepositories()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "skillswap-test",
	})
	mailer := email.NewEmailService(email.SMTPConfig{}, lgr)
	ledger := NewLedgerService(repos, nil, lgr)

	return &testEnv{
		ctx:         context.Background(),
		policy:      policy,
		repos:       repos,
		ledger:      ledger,
		auth:        NewAuthService(repos.Accounts, jwtService, mailer, policy, lgr),
		users:       NewUserService(repos.Accounts, repos.Skills, lgr),
		skills:      NewSkillService(repos.Skills, repos.Accounts, lgr),
		mentorship:  NewMentorshipService(repos, ledger, policy, nil, lgr),
		feedback:    NewFeedbackService(repos, nil, lgr),
		recs:        NewRecommendationService(repos.Accounts, repos.Skills, nil, time.Minute, nil, lgr),
		redeem:      NewRedeemService(repos, ledger, mailer, lgr),
		communities: NewCommunityService(repos, ledger, appAuth.NewAuthorizationService(repos.Communities), policy, lgr),
		experiences: NewExperienceService(repos, lgr),
		startups:    NewStartupService(repos, ledger, lgr),
	}
}

// register creates an account or fails the test
func (e *testEnv) register(t *testing.T, name, address string) *models.Account {
	t.Helper()
	resp, err := e.auth.Register(e.ctx, &dto.RegisterRequest{Name: name, Email: address, Password: "secret123"})
	if err != nil {
		t.Fatalf("register %s: %v", address, err)
	}
	return resp.Account
}

// publish posts a skill or fails the test
func (e *testEnv) publish(t *testing.T, ownerID int64, name string, direction models.SkillDirection) *models.Skill {
	t.Helper()
	skill, err := e.skills.Publish(e.ctx, ownerID, &dto.CreateSkillRequest{Name: name, Type: direction})
	if err != nil {
		t.Fatalf("publish %s: %v", name, err)
	}
	return skill
}

// balance reads the stored coin balance
func (e *testEnv) balance(t *testing.T, accountID int64) int {
	t.Helper()
	account, err := e.repos.Accounts.GetByID(e.ctx, accountID)
	if err != nil {
		t.Fatalf("get account %d: %v", accountID, err)
	}
	return account.Coins
}

// consistent reports whether the account's ledger reconciles
func (e *testEnv) consistent(t *testing.T, accountID int64) bool {
	t.Helper()
	audit, err := e.ledger.Audit(e.ctx, accountID)
	if err != nil {
		t.Fatalf("audit %d: %v", accountID, err)
	}
	return audit.Consistent
}
