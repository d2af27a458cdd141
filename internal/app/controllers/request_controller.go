package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/middleware"
)

// RequestController handles the mentorship request lifecycle
type RequestController struct {
	mentorshipService services.MentorshipService
	logger            zerolog.Logger
}

// NewRequestController creates a new RequestController
func NewRequestController(mentorshipService services.MentorshipService, logger zerolog.Logger) *RequestController {
	return &RequestController{
		mentorshipService: mentorshipService,
		logger:            logger,
	}
}

// CreateRequest opens a mentorship request and charges the request fee
// @Summary Request mentorship
// @Description Sends a request to a mentor. The learner pays the request fee.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRequestRequest true "Mentor and skill"
// @Success 201 {object} dto.APIResponse{data=models.MentorshipRequest}
// @Failure 400 {object} dto.APIResponse "Invalid request or insufficient coins"
// @Failure 404 {object} dto.APIResponse "Mentor or skill not found"
// @Router /requests [post]
func (c *RequestController) CreateRequest(ctx *gin.Context) {
	learnerID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	request, err := c.mentorshipService.Create(ctx.Request.Context(), learnerID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("learnerID", learnerID).Int64("mentorID", req.MentorID).Msg("Mentorship request rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request, "Mentorship request sent"))
}

// GetRequest returns one request to a participant
// @Summary Get a request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.MentorshipRequest}
// @Failure 403 {object} dto.APIResponse "Not a participant"
// @Failure 404 {object} dto.APIResponse "Request not found"
// @Router /requests/{id} [get]
func (c *RequestController) GetRequest(ctx *gin.Context) {
	c.withRequest(ctx, http.StatusOK, "", c.mentorshipService.Get)
}

// ListUserRequests returns the caller's outgoing and incoming requests
// @Summary Requests of an account
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Account ID (must be the caller)"
// @Success 200 {object} dto.APIResponse{data=dto.RequestListResponse}
// @Failure 403 {object} dto.APIResponse "Not your account"
// @Router /requests/user/{userId} [get]
func (c *RequestController) ListUserRequests(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	accountID, ok := middleware.ParseIDParam(ctx, "userId")
	if !ok {
		return
	}

	list, err := c.mentorshipService.ListForAccount(ctx.Request.Context(), actorID, accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list, ""))
}

// AcceptRequest moves a pending request to accepted
// @Summary Accept a request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.MentorshipRequest}
// @Failure 400 {object} dto.APIResponse "Request is not pending"
// @Failure 403 {object} dto.APIResponse "Only the mentor can accept"
// @Router /requests/{id}/accept [put]
func (c *RequestController) AcceptRequest(ctx *gin.Context) {
	c.withRequest(ctx, http.StatusOK, "Request accepted", c.mentorshipService.Accept)
}

// CompleteRequest finishes an accepted request and pays the rewards
// @Summary Complete a request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.MentorshipRequest}
// @Failure 400 {object} dto.APIResponse "Request is not accepted"
// @Failure 403 {object} dto.APIResponse "Only the mentor can complete"
// @Router /requests/{id}/complete [put]
func (c *RequestController) CompleteRequest(ctx *gin.Context) {
	c.withRequest(ctx, http.StatusOK, "Mentorship completed", c.mentorshipService.Complete)
}

// UpdateNotes replaces the session notes
// @Summary Update session notes
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.UpdateNotesRequest true "Notes"
// @Success 200 {object} dto.APIResponse{data=models.MentorshipRequest}
// @Failure 400 {object} dto.APIResponse "Request is not accepted"
// @Router /requests/{id}/notes [put]
func (c *RequestController) UpdateNotes(ctx *gin.Context) {
	var req dto.UpdateNotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	c.withRequest(ctx, http.StatusOK, "Notes updated", func(rctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error) {
		return c.mentorshipService.UpdateNotes(rctx, actorID, requestID, req.SessionNotes)
	})
}

// AttachQuiz attaches a quiz to an accepted request
// @Summary Attach a quiz
// @Description The mentor attaches 1 to 5 multiple choice questions
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.AttachQuizRequest true "Quiz"
// @Success 200 {object} dto.APIResponse{data=models.MentorshipRequest}
// @Failure 400 {object} dto.APIResponse "Invalid quiz or request not accepted"
// @Router /requests/{id}/quiz [post]
func (c *RequestController) AttachQuiz(ctx *gin.Context) {
	var req dto.AttachQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	c.withRequest(ctx, http.StatusOK, "Quiz attached", func(rctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error) {
		return c.mentorshipService.AttachQuiz(rctx, actorID, requestID, req.ToQuiz())
	})
}

// SubmitQuiz grades the learner's answers
// @Summary Submit quiz answers
// @Description A passing score completes the request with the usual rewards
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.APIResponse{data=dto.QuizResult}
// @Failure 400 {object} dto.APIResponse "No quiz, wrong answer count or request not accepted"
// @Router /requests/{id}/quiz/submit [post]
func (c *RequestController) SubmitQuiz(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	requestID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	result, err := c.mentorshipService.SubmitQuiz(ctx.Request.Context(), actorID, requestID, req.Answers)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Quiz not passed"
	if result.Passed {
		message = "Quiz passed"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, message))
}

// PostMessage adds a chat message to an accepted request
// @Summary Post a message
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.PostMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.Message}
// @Failure 400 {object} dto.APIResponse "Request is not accepted"
// @Router /requests/{id}/messages [post]
func (c *RequestController) PostMessage(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	requestID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PostMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	msg, err := c.mentorshipService.PostMessage(ctx.Request.Context(), actorID, requestID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(msg, ""))
}

// ListMessages returns a request's messages, oldest first
// @Summary List messages
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Message}
// @Router /requests/{id}/messages [get]
func (c *RequestController) ListMessages(ctx *gin.Context) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	requestID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	msgs, err := c.mentorshipService.ListMessages(ctx.Request.Context(), actorID, requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(msgs, ""))
}

// withRequest resolves the caller and :id, runs op and writes the resulting request
func (c *RequestController) withRequest(
	ctx *gin.Context,
	status int,
	message string,
	op func(ctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error),
) {
	actorID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	requestID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	request, err := op(ctx.Request.Context(), actorID, requestID)
	if err != nil {
		c.logger.Debug().Err(err).Int64("requestID", requestID).Int64("actorID", actorID).Msg("Request operation rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(status, dto.NewSuccessResponse(request, message))
}
