package app

import (
	"academy_backend/internal/config"
	"academy_backend/internal/middleware"
	"academy_backend/internal/model"
	"academy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	// 1. public, the viewer is attached when a token is present
	public := api.Group("")
	public.Use(middleware.TryAuthMiddleware(cfg))
	a.registerPublicRoutes(public, c)

	// 2. learners
	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	a.registerStudentRoutes(authGroup, c)

	// 3. administrators
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	a.registerAdminRoutes(admin, c)
}

func (a *App) registerPublicRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/site/settings", c.site.GetSettings)
	rg.GET("/pages/:page", c.site.GetPage)

	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/:id", c.course.GetCourse)

	rg.GET("/lessons/:id", c.lesson.GetLesson)
	rg.POST("/lessons/:id/seek", c.lesson.Seek)
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/courses/:id/enroll", c.course.Enroll)
	rg.GET("/courses/:id/progress", c.course.CourseProgress)
	rg.GET("/me/enrollments", c.course.MyEnrollments)

	rg.POST("/lessons/:id/progress", c.lesson.RecordProgress)
	rg.GET("/lessons/:id/progress", c.lesson.GetProgress)
	rg.GET("/lessons/:id/attachments/:attachmentId/download", c.lesson.DownloadAttachment)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/courses", c.adminCourse.ListCourses)
	rg.POST("/courses", c.adminCourse.CreateCourse)
	rg.GET("/courses/:id", c.adminCourse.GetCourse)
	rg.PUT("/courses/:id", c.adminCourse.UpdateCourse)
	rg.DELETE("/courses/:id", c.adminCourse.DeleteCourse)
	rg.POST("/courses/:id/modules", c.adminCourse.CreateModule)

	rg.PUT("/modules/:id", c.adminCourse.UpdateModule)
	rg.DELETE("/modules/:id", c.adminCourse.DeleteModule)
	rg.POST("/modules/:id/lessons", c.adminCourse.CreateLesson)

	rg.PUT("/lessons/:id", c.adminCourse.UpdateLesson)
	rg.DELETE("/lessons/:id", c.adminCourse.DeleteLesson)
	rg.POST("/lessons/:id/attachments", c.adminCourse.CreateAttachment)

	rg.DELETE("/attachments/:id", c.adminCourse.DeleteAttachment)

	rg.POST("/enrollments", c.adminCourse.Enroll)
}
