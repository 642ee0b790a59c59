package apiv1

import (
	"smarthire-backend/controllers"
	filestorage "smarthire-backend/lib/file-storage"
	"smarthire-backend/middleware"
	apimodels "smarthire-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type evidenceApiController struct {
	controllers.BaseAPIController
}

func InitEvidenceApiRouters(app *fiber.App) {
	controller := evidenceApiController{}
	app.Get("evidence", middleware.RbacMiddleware(), controller.download)
}

// @Summary Download evidence
// @Tags Candidate
// @Description Download a surveillance report or rejection evidence by its reference
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   ref          		query    string  				    	true         "evidence reference"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 503 {object} apimodels.Response
// @router /api/v1/space/evidence [get]
func (c *evidenceApiController) download(ctx *fiber.Ctx) error {
	if filestorage.Instance == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("file storage is not configured"))
	}
	ref := ctx.Query("ref")
	body, contentType, err := filestorage.Instance.GetEvidence(ctx.UserContext(), ref)
	if err != nil {
		if errors.Is(err, filestorage.ErrBadReference) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		log.WithError(err).WithField("ref", ref).Error("error getting evidence")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
	}
	if contentType != "" {
		ctx.Set(fiber.HeaderContentType, contentType)
	}
	return ctx.Status(fiber.StatusOK).Send(body)
}
