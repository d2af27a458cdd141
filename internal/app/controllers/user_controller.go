package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/middleware"
)

// UserController handles account profiles, the leaderboard, recommendations and the ledger view
type UserController struct {
	userService           services.UserService
	ledgerService         services.LedgerService
	recommendationService services.RecommendationService
}

// NewUserController creates a new UserController
func NewUserController(
	userService services.UserService,
	ledgerService services.LedgerService,
	recommendationService services.RecommendationService,
) *UserController {
	return &UserController{
		userService:           userService,
		ledgerService:         ledgerService,
		recommendationService: recommendationService,
	}
}

// ListUsers returns every account
// @Summary List accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Account}
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	accounts, err := c.userService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(accounts, ""))
}

// GetUserByID returns one profile with its skills
// @Summary Get account profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse{data=models.Account}
// @Failure 404 {object} dto.APIResponse "Account not found"
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	account, err := c.userService.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(account, ""))
}

// Leaderboard returns the richest accounts
// @Summary Coin leaderboard
// @Description Top accounts by coin balance
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AccountSummary}
// @Router /users/leaderboard [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	accounts, err := c.userService.Leaderboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	board := make([]*dto.AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		board = append(board, dto.NewAccountSummary(account))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(board, ""))
}

// Recommendations returns the best mentors for a learner
// @Summary Mentor recommendations
// @Description Top 5 mentors ranked by skill overlap, rating, activity and coins
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Learner account ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RecommendationResponse}
// @Failure 404 {object} dto.APIResponse "Account not found"
// @Router /users/recommendations/{userId} [get]
func (c *UserController) Recommendations(ctx *gin.Context) {
	learnerID, ok := middleware.ParseIDParam(ctx, "userId")
	if !ok {
		return
	}

	recs, err := c.recommendationService.Recommend(ctx.Request.Context(), learnerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(recs, ""))
}

// Ledger returns the caller's audit and transaction history
// @Summary My ledger
// @Description Balance reconciliation and the full transaction history
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.LedgerResponse}
// @Router /accounts/me/ledger [get]
func (c *UserController) Ledger(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	resp := &dto.LedgerResponse{}
	g, gctx := errgroup.WithContext(ctx.Request.Context())
	g.Go(func() error {
		audit, err := c.ledgerService.Audit(gctx, accountID)
		resp.Audit = audit
		return err
	})
	g.Go(func() error {
		var err error
		resp.Transactions, err = c.ledgerService.History(gctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if resp.Transactions == nil {
		resp.Transactions = []*models.Transaction{}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
