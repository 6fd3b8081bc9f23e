package controller

import (
	"net/http"

	"academy_backend/internal/service"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	Lessons  *service.LessonService
	Progress *service.ProgressService
}

func NewLessonController(lessons *service.LessonService, progress *service.ProgressService) *LessonController {
	return &LessonController{Lessons: lessons, Progress: progress}
}

type SeekRequest struct {
	Position *float64 `json:"position" binding:"required"`
}

type ProgressRequest struct {
	PlayedFraction *float64 `json:"playedFraction" binding:"required,gte=0,lte=1"`
	PlayedSeconds  float64  `json:"playedSeconds" binding:"gte=0"`
}

// @Summary View a lesson
// @Description Access decision and render directive for the viewer. Locked lessons answer 200 with the locked surface.
// @Tags Lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response{data=service.LessonView}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.Lessons.View(ctx.Request.Context(), util.ViewerID(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Validate a seek
// @Description Preview lessons clamp seeks to the preview cap
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param body body SeekRequest true "Requested position in seconds"
// @Success 200 {object} util.Response{data=service.SeekResult}
// @Failure 403 {object} util.Response
// @Router /api/lessons/{id}/seek [post]
func (c *LessonController) Seek(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req SeekRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Lessons.Seek(ctx.Request.Context(), util.ViewerID(ctx), id, *req.Position)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Report playback progress
// @Description The lesson is marked completed once playedFraction passes the completion threshold
// @Tags Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param body body ProgressRequest true "Playback state"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/lessons/{id}/progress [post]
func (c *LessonController) RecordProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	recorded, err := c.Progress.RecordProgress(ctx.Request.Context(), user.UserID, id, *req.PlayedFraction, req.PlayedSeconds)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"recorded": recorded})
}

// @Summary Get lesson progress
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.LessonProgress}
// @Router /api/lessons/{id}/progress [get]
func (c *LessonController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.Progress.GetProgress(ctx.Request.Context(), user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary Download an attachment
// @Description Redirects to a short-lived URL. Only enrolled viewers of paid lessons may download.
// @Tags Lessons
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param attachmentId path int true "Attachment ID"
// @Success 302
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/attachments/{attachmentId}/download [get]
func (c *LessonController) DownloadAttachment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	attachmentID, ok := pathID(ctx, "attachmentId")
	if !ok {
		return
	}

	url, err := c.Lessons.AttachmentDownload(ctx.Request.Context(), user.UserID, id, attachmentID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, url)
}
