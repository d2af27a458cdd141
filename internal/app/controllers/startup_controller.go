package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/middleware"
	"github.com/yigit/skillswap/internal/pkg/helpers"
)

// StartupController handles the startup showcase
type StartupController struct {
	startupService services.StartupService
}

// NewStartupController creates a new StartupController
func NewStartupController(startupService services.StartupService) *StartupController {
	return &StartupController{startupService: startupService}
}

// ListStartups returns startups, newest first
// @Summary List startups
// @Tags startups
// @Produce json
// @Param limit query int false "Maximum number of startups" maximum(100)
// @Success 200 {object} dto.APIResponse{data=[]models.Startup}
// @Router /startups [get]
func (c *StartupController) ListStartups(ctx *gin.Context) {
	startups, err := c.startupService.List(ctx.Request.Context(), helpers.ParseLimit(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(startups, ""))
}

// GetStartup returns one startup
// @Summary Get a startup
// @Tags startups
// @Produce json
// @Param id path int true "Startup ID"
// @Success 200 {object} dto.APIResponse{data=models.Startup}
// @Failure 404 {object} dto.APIResponse "Startup not found"
// @Router /startups/{id} [get]
func (c *StartupController) GetStartup(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	startup, err := c.startupService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(startup, ""))
}

// RegisterStartup registers a startup owned by the caller
// @Summary Register a startup
// @Tags startups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterStartupRequest true "Startup"
// @Success 201 {object} dto.APIResponse{data=models.Startup}
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Router /startups [post]
func (c *StartupController) RegisterStartup(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.RegisterStartupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	startup, err := c.startupService.Register(ctx.Request.Context(), actorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(startup, "Startup registered"))
}

// SponsorStartup moves coins from the caller to a startup
// @Summary Sponsor a startup
// @Tags startups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Startup ID"
// @Param request body dto.SponsorRequest true "Amount"
// @Success 200 {object} dto.APIResponse{data=dto.SponsorResponse}
// @Failure 400 {object} dto.APIResponse "Invalid amount or insufficient coins"
// @Failure 404 {object} dto.APIResponse "Startup not found"
// @Router /startups/{id}/sponsor [post]
func (c *StartupController) SponsorStartup(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SponsorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	startup, balance, err := c.startupService.Sponsor(ctx.Request.Context(), actorID, id, req.Amount)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(&dto.SponsorResponse{Startup: startup, Balance: balance}, "Startup sponsored"))
}

// RateStartup records the caller's star rating, replacing an earlier one
// @Summary Rate a startup
// @Tags startups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Startup ID"
// @Param request body dto.RateRequest true "Stars"
// @Success 200 {object} dto.APIResponse{data=models.Startup}
// @Failure 404 {object} dto.APIResponse "Startup not found"
// @Router /startups/{id}/rate [post]
func (c *StartupController) RateStartup(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	startup, err := c.startupService.Rate(ctx.Request.Context(), actorID, id, req.Stars)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(startup, ""))
}
