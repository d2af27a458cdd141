package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/middleware"
)

// FeedbackController handles mentor reviews
type FeedbackController struct {
	feedbackService services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// SubmitFeedback reviews a completed mentorship
// @Summary Submit feedback
// @Description One review per completed request, by its learner
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitFeedbackRequest true "Rating and comment"
// @Success 201 {object} dto.APIResponse{data=models.Feedback}
// @Failure 400 {object} dto.APIResponse "Not completed or already reviewed"
// @Failure 403 {object} dto.APIResponse "Only the learner can review"
// @Router /feedback [post]
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	learnerID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	feedback, err := c.feedbackService.Submit(ctx.Request.Context(), learnerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(feedback, "Feedback submitted"))
}

// ListMentorFeedback returns a mentor's reviews with the running average
// @Summary Feedback for a mentor
// @Tags feedback
// @Produce json
// @Param mentorId path int true "Mentor account ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorFeedbackResponse}
// @Failure 404 {object} dto.APIResponse "Mentor not found"
// @Router /feedback/mentor/{mentorId} [get]
func (c *FeedbackController) ListMentorFeedback(ctx *gin.Context) {
	mentorID, ok := middleware.ParseIDParam(ctx, "mentorId")
	if !ok {
		return
	}

	resp, err := c.feedbackService.ListForMentor(ctx.Request.Context(), mentorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetRequestFeedback returns the review left on one request
// @Summary Feedback for a request
// @Tags feedback
// @Produce json
// @Param requestId path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.Feedback}
// @Failure 404 {object} dto.APIResponse "No feedback yet"
// @Router /feedback/request/{requestId} [get]
func (c *FeedbackController) GetRequestFeedback(ctx *gin.Context) {
	requestID, ok := middleware.ParseIDParam(ctx, "requestId")
	if !ok {
		return
	}

	feedback, err := c.feedbackService.GetForRequest(ctx.Request.Context(), requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feedback, ""))
}
