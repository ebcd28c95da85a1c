package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/services"
	"github.com/yigit/camnote/internal/middleware"
)

// FeedbackController handles the feedback board
type FeedbackController struct {
	feedbackService services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// List returns every feedback record
// @Summary List feedback
// @Description Newest first. canDelete is set on the caller's own records.
// @Tags feedback
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FeedbackListResponse}
// @Router /feedbacks [get]
func (c *FeedbackController) List(ctx *gin.Context) {
	resp, err := c.feedbackService.List(ctx.Request.Context(), middleware.SessionFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Submit stores a feedback record
// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} dto.APIResponse{data=dto.FeedbackItem}
// @Failure 400 {object} dto.ErrorResponse "모든 항목을 입력해주세요."
// @Router /feedbacks [post]
func (c *FeedbackController) Submit(ctx *gin.Context) {
	req, ok := bindBody[dto.FeedbackRequest](ctx)
	if !ok {
		return
	}

	item, err := c.feedbackService.Submit(ctx.Request.Context(), middleware.SessionFrom(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(item))
}

// Delete removes the caller's own feedback
// @Summary Delete feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the submitter"
// @Failure 404 {object} dto.ErrorResponse "Feedback not found"
// @Failure 428 {object} dto.ErrorResponse "Confirmation required"
// @Router /feedbacks/{id} [delete]
func (c *FeedbackController) Delete(ctx *gin.Context) {
	if err := c.feedbackService.Delete(ctx.Request.Context(), middleware.SessionFrom(ctx), ctx.Param("id"), confirmed(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "피드백이 삭제되었습니다."}))
}

// AdminList returns every feedback record for the administrator
// @Summary List feedback for response
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.FeedbackItem}
// @Router /admin/feedbacks [get]
func (c *FeedbackController) AdminList(ctx *gin.Context) {
	items, err := c.feedbackService.AdminList(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(items))
}

// Respond stores the administrator's reply
// @Summary Respond to feedback
// @Description Sets the response and emails the submitter. A mail failure does not fail the request.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Param request body dto.FeedbackResponseRequest true "Response"
// @Success 200 {object} dto.APIResponse{data=dto.FeedbackItem}
// @Failure 400 {object} dto.ErrorResponse "응답 내용을 입력하세요."
// @Router /admin/feedbacks/{id}/response [put]
func (c *FeedbackController) Respond(ctx *gin.Context) {
	req, ok := bindBody[dto.FeedbackResponseRequest](ctx)
	if !ok {
		return
	}

	item, err := c.feedbackService.Respond(ctx.Request.Context(), ctx.Param("id"), req.Response)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(item))
}
