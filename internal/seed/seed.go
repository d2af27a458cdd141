package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

type demoSkill struct {
	name      string
	level     models.SkillLevel
	category  models.SkillCategory
	direction models.SkillDirection
}

type demoAccount struct {
	register dto.RegisterRequest
	skills   []demoSkill
}

var demoAccounts = []demoAccount{
	{
		register: dto.RegisterRequest{
			Name:     "Ada Mentor",
			Email:    "ada@skillswap.dev",
			Password: "demo-password",
			Bio:      "Backend engineer, happy to pair on Go and SQL.",
		},
		skills: []demoSkill{
			{"Go", models.LevelAdvanced, models.CategoryWeb, models.DirectionOffered},
			{"PostgreSQL", models.LevelIntermediate, models.CategoryWeb, models.DirectionOffered},
			{"Figma", models.LevelBeginner, models.CategoryDesign, models.DirectionWanted},
		},
	},
	{
		register: dto.RegisterRequest{
			Name:     "Linus Learner",
			Email:    "linus@skillswap.dev",
			Password: "demo-password",
			Bio:      "Designer moving into backend work.",
		},
		skills: []demoSkill{
			{"Figma", models.LevelAdvanced, models.CategoryDesign, models.DirectionOffered},
			{"Go", models.LevelBeginner, models.CategoryWeb, models.DirectionWanted},
		},
	},
}

// CreateDemoData registers two demo accounts with complementary skills.
// Accounts that already exist are left untouched, so reruns are safe.
func CreateDemoData(ctx context.Context, authService *services.AuthService, skillService services.SkillService, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo accounts...")
	var finalErr error

	for _, demo := range demoAccounts {
		req := demo.register
		resp, err := authService.Register(ctx, &req)
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Debug().Str("email", req.Email).Msg("Demo account already exists")
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("email", req.Email).Msg("Error creating demo account")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, s := range demo.skills {
			_, err := skillService.Publish(ctx, resp.Account.ID, &dto.CreateSkillRequest{
				Name:     s.name,
				Level:    s.level,
				Category: s.category,
				Type:     s.direction,
			})
			if err != nil {
				lgr.Error().Err(err).Str("skill", s.name).Msg("Error publishing demo skill")
				finalErr = errors.Join(finalErr, err)
			}
		}
		lgr.Info().Str("email", req.Email).Int("skills", len(demo.skills)).Msg("Demo account created")
	}

	return finalErr
}
