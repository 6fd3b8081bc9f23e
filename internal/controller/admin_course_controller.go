package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminCourseController struct {
	Courses     *service.CourseService
	Enrollments *service.EnrollmentService
}

func NewAdminCourseController(courses *service.CourseService, enrollments *service.EnrollmentService) *AdminCourseController {
	return &AdminCourseController{Courses: courses, Enrollments: enrollments}
}

type AdminEnrollmentRequest struct {
	UserID   uint `json:"userId" binding:"required"`
	CourseID uint `json:"courseId" binding:"required"`
}

// @Summary List all courses
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /api/admin/courses [get]
func (c *AdminCourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.Courses.ListCourses(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Get a course tree, drafts included
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseTree}
// @Router /api/admin/courses/{id} [get]
func (c *AdminCourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	tree, err := c.Courses.AssembleCourse(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, tree)
}

// @Summary Create a course
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseRequest true "Course"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/admin/courses [post]
func (c *AdminCourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.Courses.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary Update a course
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body service.CourseRequest true "Course"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/admin/courses/{id} [put]
func (c *AdminCourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.Courses.UpdateCourse(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Delete a course with its modules, lessons and attachments
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *AdminCourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Courses.DeleteCourse(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Add a module
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body service.ModuleRequest true "Module"
// @Success 201 {object} util.Response{data=model.CourseModule}
// @Router /api/admin/courses/{id}/modules [post]
func (c *AdminCourseController) CreateModule(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	module, err := c.Courses.CreateModule(ctx.Request.Context(), courseID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// @Summary Update a module
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Param body body service.ModuleRequest true "Module"
// @Success 200 {object} util.Response{data=model.CourseModule}
// @Router /api/admin/modules/{id} [put]
func (c *AdminCourseController) UpdateModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	module, err := c.Courses.UpdateModule(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// @Summary Delete a module with its lessons
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [delete]
func (c *AdminCourseController) DeleteModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Courses.DeleteModule(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Add a lesson
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Param body body service.LessonRequest true "Lesson"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/admin/modules/{id}/lessons [post]
func (c *AdminCourseController) CreateLesson(ctx *gin.Context) {
	moduleID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.Courses.CreateLesson(ctx.Request.Context(), moduleID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Update a lesson
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param body body service.LessonRequest true "Lesson"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/admin/lessons/{id} [put]
func (c *AdminCourseController) UpdateLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.Courses.UpdateLesson(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary Delete a lesson
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Router /api/admin/lessons/{id} [delete]
func (c *AdminCourseController) DeleteLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Courses.DeleteLesson(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Register attachment metadata
// @Description The file itself is uploaded to storage out of band
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param body body service.AttachmentRequest true "Attachment"
// @Success 201 {object} util.Response{data=model.LessonAttachment}
// @Router /api/admin/lessons/{id}/attachments [post]
func (c *AdminCourseController) CreateAttachment(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.AttachmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.URL == "" && req.StoragePath == "" {
		util.BadRequest(ctx, "url or storagePath is required")
		return
	}
	attachment, err := c.Courses.CreateAttachment(ctx.Request.Context(), lessonID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, attachment)
}

// @Summary Delete an attachment
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Attachment ID"
// @Success 200 {object} util.Response
// @Router /api/admin/attachments/{id} [delete]
func (c *AdminCourseController) DeleteAttachment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Courses.DeleteAttachment(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Enroll a user
// @Description Grants access to any course, drafts included
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AdminEnrollmentRequest true "Enrollment"
// @Success 200 {object} util.Response
// @Router /api/admin/enrollments [post]
func (c *AdminCourseController) Enroll(ctx *gin.Context) {
	var req AdminEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.Enrollments.Enroll(ctx.Request.Context(), req.UserID, req.CourseID, model.EnrollmentAdmin)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"enrolled": true, "created": created})
}
