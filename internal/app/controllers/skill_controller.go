package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/middleware"
)

// SkillController handles the skill catalog
type SkillController struct {
	skillService services.SkillService
}

// NewSkillController creates a new SkillController
func NewSkillController(skillService services.SkillService) *SkillController {
	return &SkillController{skillService: skillService}
}

// PublishSkill adds a skill to the caller's profile
// @Summary Publish a skill
// @Description Adds an offered or wanted skill. Level defaults to Beginner, category to Other.
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSkillRequest true "Skill"
// @Success 201 {object} dto.APIResponse{data=models.Skill}
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Router /skills [post]
func (c *SkillController) PublishSkill(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	skill, err := c.skillService.Publish(ctx.Request.Context(), accountID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(skill, "Skill published"))
}

// SearchSkills searches offered skills
// @Summary Search skills
// @Description Case-insensitive name search over offered skills; category All matches everything
// @Tags skills
// @Produce json
// @Param skillName query string false "Name substring"
// @Param category query string false "Category"
// @Success 200 {object} dto.APIResponse{data=[]dto.SkillSearchResult}
// @Router /skills/search [get]
func (c *SkillController) SearchSkills(ctx *gin.Context) {
	var req dto.SkillSearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	results, err := c.skillService.Search(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results, ""))
}

// ListUserSkills returns every skill an account posted
// @Summary Skills of an account
// @Tags skills
// @Produce json
// @Param userId path int true "Account ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Skill}
// @Failure 404 {object} dto.APIResponse "Account not found"
// @Router /skills/user/{userId} [get]
func (c *SkillController) ListUserSkills(ctx *gin.Context) {
	ownerID, ok := middleware.ParseIDParam(ctx, "userId")
	if !ok {
		return
	}

	skills, err := c.skillService.ListByOwner(ctx.Request.Context(), ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(skills, ""))
}
