package controller

import (
	"errors"
	"net/http"

	"academy_backend/internal/model"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinels to HTTP answers. Anything unknown is
// logged and reported as an internal error.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAuthRequired):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrAttachmentNotFound),
		errors.Is(err, util.ErrPageNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrLessonLocked):
		util.ErrorWithData(ctx, http.StatusForbidden, err.Error(), gin.H{
			"tier":   model.TierLocked,
			"prompt": util.LabelLessonLocked,
		})
	case errors.Is(err, util.ErrEnrollmentRequired):
		util.ErrorWithData(ctx, http.StatusForbidden, err.Error(), gin.H{
			"lockedReason": util.LabelEnrollmentRequired,
		})
	case errors.Is(err, util.ErrCourseNotOpen):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrProgressNotSaved), errors.Is(err, util.ErrEnrollmentFailed):
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// pathID reads a numeric path parameter, answering 400 when it is not one.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}
