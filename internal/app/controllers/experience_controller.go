package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/middleware"
)

// ExperienceController handles the experience board
type ExperienceController struct {
	experienceService services.ExperienceService
}

// NewExperienceController creates a new ExperienceController
func NewExperienceController(experienceService services.ExperienceService) *ExperienceController {
	return &ExperienceController{experienceService: experienceService}
}

// ListExperiences returns shared experiences, newest first
// @Summary List experiences
// @Tags experiences
// @Produce json
// @Param type query string false "Experience type, or All"
// @Success 200 {object} dto.APIResponse{data=[]models.Experience}
// @Failure 400 {object} dto.APIResponse "Unknown type"
// @Router /experiences [get]
func (c *ExperienceController) ListExperiences(ctx *gin.Context) {
	exps, err := c.experienceService.List(ctx.Request.Context(), ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exps, ""))
}

// GetExperience returns one experience
// @Summary Get an experience
// @Tags experiences
// @Produce json
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse{data=models.Experience}
// @Failure 404 {object} dto.APIResponse "Experience not found"
// @Router /experiences/{id} [get]
func (c *ExperienceController) GetExperience(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	exp, err := c.experienceService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exp, ""))
}

// ShareExperience posts a new experience
// @Summary Share an experience
// @Description An empty type is filled in by the keyword classifier
// @Tags experiences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ShareExperienceRequest true "Experience"
// @Success 201 {object} dto.APIResponse{data=models.Experience}
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Router /experiences [post]
func (c *ExperienceController) ShareExperience(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.ShareExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	exp, err := c.experienceService.Share(ctx.Request.Context(), actorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(exp, "Experience shared"))
}

// Classify guesses an experience type from free text
// @Summary Classify text
// @Tags experiences
// @Accept json
// @Produce json
// @Param request body dto.ClassifyRequest true "Text"
// @Success 200 {object} dto.APIResponse{data=dto.ClassifyResponse}
// @Router /experiences/classify [post]
func (c *ExperienceController) Classify(ctx *gin.Context) {
	var req dto.ClassifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(&dto.ClassifyResponse{Type: c.experienceService.Classify(req.Text)}, ""))
}

// React likes or dislikes an experience. Repeating the same reaction removes it.
// @Summary React to an experience
// @Tags experiences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Param request body dto.ReactRequest true "Reaction"
// @Success 200 {object} dto.APIResponse{data=models.Experience}
// @Failure 404 {object} dto.APIResponse "Experience not found"
// @Router /experiences/{id}/react [post]
func (c *ExperienceController) React(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	exp, err := c.experienceService.React(ctx.Request.Context(), actorID, id, req.Reaction)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exp, ""))
}
