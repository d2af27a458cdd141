package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/middleware"
)

// RedeemController handles the reward catalog and coin history
type RedeemController struct {
	redeemService services.RedeemService
	ledgerService services.LedgerService
}

// NewRedeemController creates a new RedeemController
func NewRedeemController(redeemService services.RedeemService, ledgerService services.LedgerService) *RedeemController {
	return &RedeemController{
		redeemService: redeemService,
		ledgerService: ledgerService,
	}
}

// ListOptions returns the reward catalog
// @Summary Reward catalog
// @Tags redeem
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.RewardOption}
// @Router /redeem/options [get]
func (c *RedeemController) ListOptions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.redeemService.Options(), ""))
}

// Redeem spends coins on a catalog reward
// @Summary Redeem a reward
// @Tags redeem
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RedeemRequest true "Reward"
// @Success 200 {object} dto.APIResponse{data=dto.RedeemResponse}
// @Failure 400 {object} dto.APIResponse "Insufficient coins"
// @Failure 404 {object} dto.APIResponse "Unknown reward"
// @Router /redeem [post]
func (c *RedeemController) Redeem(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.RedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.redeemService.Redeem(ctx.Request.Context(), accountID, req.RewardID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Reward redeemed"))
}

// History returns the caller's redemptions
// @Summary Redemption history
// @Tags redeem
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Redemption}
// @Router /redeem/history [get]
func (c *RedeemController) History(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	history, err := c.redeemService.History(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(history, ""))
}

// Transactions returns every coin movement on the caller's account
// @Summary Coin transactions
// @Tags redeem
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Transaction}
// @Router /redeem/transactions [get]
func (c *RedeemController) Transactions(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	txs, err := c.ledgerService.History(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(txs, ""))
}
