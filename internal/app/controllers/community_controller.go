package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/middleware"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/helpers"
)

// CommunityController handles community related operations
type CommunityController struct {
	communityService services.CommunityService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService) *CommunityController {
	return &CommunityController{communityService: communityService}
}

// GetAllCommunities handles retrieving all communities with optional filtering
// @Summary Get all communities
// @Description Retrieves communities, optionally only those created by one account
// @Tags communities
// @Produce json
// @Param createdBy query int false "Filter by creator ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Community} "Communities retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request parameters"
// @Router /communities [get]
func (c *CommunityController) GetAllCommunities(ctx *gin.Context) {
	createdBy, ok := helpers.ParseOptionalInt64(ctx, "createdBy")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("createdBy must be an integer"))
		return
	}

	communities, err := c.communityService.List(ctx.Request.Context(), &dto.CommunityFilterRequest{CreatedBy: createdBy})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(communities, "Communities retrieved successfully"))
}

// GetCommunityByID handles retrieving a community with its posts
// @Summary Get community by ID
// @Tags communities
// @Produce json
// @Param id path int true "Community ID"
// @Success 200 {object} dto.APIResponse{data=models.Community} "Community retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Community not found"
// @Router /communities/{id} [get]
func (c *CommunityController) GetCommunityByID(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	community, err := c.communityService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community, "Community retrieved successfully"))
}

// CreateCommunity handles creating a new community
// @Summary Create a new community
// @Description Creates a community for the community creation fee. The creator becomes its first member.
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param community body dto.CreateCommunityRequest true "Community information"
// @Success 201 {object} dto.APIResponse{data=models.Community} "Community created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request, name taken or insufficient coins"
// @Router /communities [post]
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	community, err := c.communityService.Create(ctx.Request.Context(), actorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(community, "Community created successfully"))
}

// JoinCommunity handles adding the caller as a member
// @Summary Join a community
// @Tags communities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Community ID"
// @Success 200 {object} dto.APIResponse{data=models.Community} "Joined community"
// @Failure 400 {object} dto.APIResponse "Already a member"
// @Failure 404 {object} dto.APIResponse "Community not found"
// @Router /communities/{id}/join [post]
func (c *CommunityController) JoinCommunity(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	communityID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	community, err := c.communityService.Join(ctx.Request.Context(), actorID, communityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community, "Joined community"))
}

// CreatePost handles a member posting to a community
// @Summary Create a post
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Community ID"
// @Param post body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=models.Post} "Post created"
// @Failure 403 {object} dto.APIResponse "Not a member"
// @Router /communities/{id}/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	communityID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	post, err := c.communityService.CreatePost(ctx.Request.Context(), actorID, communityID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post, "Post created"))
}

// AddComment handles a member commenting on a post
// @Summary Comment on a post
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Community ID"
// @Param postId path int true "Post ID"
// @Param comment body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=models.Comment} "Comment added"
// @Failure 403 {object} dto.APIResponse "Not a member"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /communities/{id}/posts/{postId}/comments [post]
func (c *CommunityController) AddComment(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	communityID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	postID, ok := middleware.ParseIDParam(ctx, "postId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	comment, err := c.communityService.AddComment(ctx.Request.Context(), actorID, communityID, postID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment, "Comment added"))
}

// SetChallenge handles the creator replacing the community challenge
// @Summary Set the community challenge
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Community ID"
// @Param challenge body dto.SetChallengeRequest true "Challenge"
// @Success 200 {object} dto.APIResponse{data=models.Community} "Challenge updated"
// @Failure 403 {object} dto.APIResponse "Only the creator can set the challenge"
// @Router /communities/{id}/challenge [post]
func (c *CommunityController) SetChallenge(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	communityID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	community, err := c.communityService.SetChallenge(ctx.Request.Context(), actorID, communityID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community, "Challenge updated"))
}
