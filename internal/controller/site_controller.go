package controller

import (
	"academy_backend/internal/service"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SiteController struct {
	Service *service.SiteService
}

func NewSiteController(svc *service.SiteService) *SiteController {
	return &SiteController{Service: svc}
}

// @Summary Site settings
// @Description Header and footer settings. Served from cache and never fails.
// @Tags Site
// @Produce json
// @Success 200 {object} util.Response{data=service.SiteSettings}
// @Router /api/site/settings [get]
func (c *SiteController) GetSettings(ctx *gin.Context) {
	util.Success(ctx, c.Service.Settings(ctx.Request.Context()))
}

// @Summary Marketing page content
// @Tags Site
// @Produce json
// @Param page path string true "Page slug (home, about)"
// @Success 200 {object} util.Response{data=service.PageView}
// @Failure 404 {object} util.Response
// @Router /api/pages/{page} [get]
func (c *SiteController) GetPage(ctx *gin.Context) {
	page, err := c.Service.Page(ctx.Request.Context(), ctx.Param("page"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, page)
}
