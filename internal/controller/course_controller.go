package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Courses     *service.CourseService
	Enrollments *service.EnrollmentService
	Progress    *service.ProgressService
}

func NewCourseController(courses *service.CourseService, enrollments *service.EnrollmentService, progress *service.ProgressService) *CourseController {
	return &CourseController{Courses: courses, Enrollments: enrollments, Progress: progress}
}

// @Summary Course catalog
// @Tags Courses
// @Produce json
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.Courses.ListPublishedCourses(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Course detail
// @Description Ordered modules and lessons with derived stats and the viewer's enrollment
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseTree}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	tree, err := c.Courses.AssemblePublishedCourse(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"course":     tree,
		"isEnrolled": c.Enrollments.IsEnrolled(ctx.Request.Context(), util.ViewerID(ctx), id),
	})
}

// @Summary Enroll in a course
// @Description Enrolling again is a no-op success
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	created, err := c.Enrollments.Enroll(ctx.Request.Context(), user.UserID, id, model.EnrollmentSelf)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"enrolled": true, "created": created})
}

// @Summary My enrollments
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/me/enrollments [get]
func (c *CourseController) MyEnrollments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.Enrollments.ListForUser(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// @Summary Course progress
// @Description Completed lessons in course order
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Router /api/courses/{id}/progress [get]
func (c *CourseController) CourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.Progress.CourseProgress(ctx.Request.Context(), user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
