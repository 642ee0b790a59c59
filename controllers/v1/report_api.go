package apiv1

import (
	"fmt"
	"time"

	"smarthire-backend/controllers"
	"smarthire-backend/lib/analytics"
	"smarthire-backend/middleware"
	apimodels "smarthire-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("report", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Get("", controller.summary)
		router.Get("export", controller.export)
	})
}

// @Summary Pipeline report
// @Tags Report
// @Description Candidate counts by status, stage and department, review queues and test statistics
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=reportapimodels.Summary}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report [get]
func (c *reportApiController) summary(ctx *fiber.Ctx) error {
	summary, err := analytics.Instance.Summary(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(summary))
}

// @Summary Export to xlsx
// @Tags Report
// @Description Candidates and report summary as an Excel workbook
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/report/export [get]
func (c *reportApiController) export(ctx *fiber.Ctx) error {
	data, err := analytics.Instance.ExportToXls(ctx.UserContext())
	if err != nil {
		log.WithError(err).Error("error exporting candidates")
		return c.SendError(ctx, err)
	}
	fileName := fmt.Sprintf("candidates_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.SendStream(data)
}
