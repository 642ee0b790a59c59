package publicapi

import (
	"smarthire-backend/controllers"
	"smarthire-backend/lib/applicant"
	authutils "smarthire-backend/lib/utils/auth-utils"
	"smarthire-backend/models"
	apimodels "smarthire-backend/models/api"
	candidateapimodels "smarthire-backend/models/api/candidate"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type publicApplyApiController struct {
	controllers.BaseAPIController
}

func InitPublicApplyApiRouters(app *fiber.App) {
	controller := publicApplyApiController{}
	app.Post("candidate", controller.apply)
}

// @Summary Apply for a vacancy
// @Tags Self service
// @Description Candidate submits the application form. The returned token gives access to the own application and the pre-employment test.
// @Param	body body	 candidateapimodels.CandidateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.SelfServiceResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/public/candidate [post]
func (c *publicApplyApiController) apply(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := models.Actor{Role: models.CandidateRole}
	rec, err := applicant.Instance.Create(ctx.UserContext(), actor, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	token, err := authutils.GetToken(rec.ID, rec.FullName, models.CandidateRole)
	if err != nil {
		log.WithError(err).WithField("candidate_id", rec.ID).Error("error signing candidate token")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("error signing candidate token"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidateapimodels.SelfServiceResponse{
		Candidate: rec,
		Token:     token,
	}))
}
