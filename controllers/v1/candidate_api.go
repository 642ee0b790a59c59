package apiv1

import (
	"smarthire-backend/config"
	"smarthire-backend/controllers"
	"smarthire-backend/lib/applicant"
	applicanthistory "smarthire-backend/lib/applicant-history"
	filestorage "smarthire-backend/lib/file-storage"
	stageresolver "smarthire-backend/lib/stage-resolver"
	"smarthire-backend/middleware"
	apimodels "smarthire-backend/models/api"
	candidateapimodels "smarthire-backend/models/api/candidate"
	dbmodels "smarthire-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app *fiber.App) {
	controller := candidateApiController{}
	app.Get("self", middleware.RbacMiddleware(), controller.self)
	app.Route("candidate", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("", controller.update)
			idRouter.Put("transition/:name", controller.transition)
			idRouter.Get("stage", controller.stage)
			idRouter.Get("transitions", controller.transitions)
			idRouter.Post("history", controller.history)
			idRouter.Put("comment", controller.comment)
			idRouter.Put("test", controller.test)
			idRouter.Post("evidence", middleware.WithBodyLimit(config.Conf.S3.MaxFileSize), controller.uploadEvidence)
		})
	})
}

// @Summary Create candidate
// @Tags Candidate
// @Description Create a candidate from the application form (HR, Admin)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dbmodels.Candidate}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 503 {object} apimodels.Response
// @router /api/v1/space/candidate [post]
func (c *candidateApiController) create(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicant.Instance.Create(ctx.UserContext(), middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary List candidates
// @Tags Candidate
// @Description List candidates, newest first, with their current pipeline stage
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 503 {object} apimodels.Response
// @router /api/v1/space/candidate/list [post]
func (c *candidateApiController) list(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := applicant.Instance.List(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Get candidate
// @Tags Candidate
// @Description Get the candidate snapshot
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=dbmodels.Candidate}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/space/candidate/{id} [get]
func (c *candidateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicant.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Get own application
// @Tags Candidate
// @Description Get the application of the calling candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=dbmodels.Candidate}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/space/self [get]
func (c *candidateApiController) self(ctx *fiber.Ctx) error {
	rec, err := applicant.Instance.GetByID(ctx.UserContext(), middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Edit candidate fields
// @Tags Candidate
// @Description Apply field edits from an edited snapshot. Only the fields allowed for the caller role are taken, every change is written to the history.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param	body body	 dbmodels.Candidate	true	"edited snapshot, version must match the stored one"
// @Success 200 {object} apimodels.Response{data=dbmodels.Candidate}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/space/candidate/{id} [put]
func (c *candidateApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dbmodels.Candidate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicant.Instance.ApplyFieldEdits(ctx.UserContext(), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Lifecycle transition
// @Tags Candidate
// @Description Move the candidate through the hiring pipeline. Transitions: schedule_interview, interview_select, interview_pending, interview_reject, surveillance_clear, surveillance_flag, surveillance_reject, offer_accepted, joining_scheduled, mark_joined
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param   name          		path    string  				    	true         "transition name"
// @Param	body body	 candidateapimodels.TransitionData	false	"transition payload"
// @Success 200 {object} apimodels.Response{data=dbmodels.Candidate}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/transition/{name} [put]
func (c *candidateApiController) transition(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.TransitionData
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	rec, err := applicant.Instance.ApplyTransition(ctx.UserContext(), id, ctx.Params("name"), middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Pipeline stage
// @Tags Candidate
// @Description Stage tracker of the candidate: every stage with its state, owners and the history entry that completed it. yourTask is set when the active stage belongs to the caller's role
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.StageProgress}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/stage [get]
func (c *candidateApiController) stage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicant.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	progress := applicant.Instance.ResolveStage(rec)
	progress.YourTask = stageresolver.IsTaskOf(progress, middleware.GetUserRole(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(progress))
}

// @Summary Available transitions
// @Tags Candidate
// @Description Transitions the caller may apply to the candidate in its current status
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=[]string}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/transitions [get]
func (c *candidateApiController) transitions(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicant.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicant.Instance.AvailableTransitions(rec, middleware.GetUserRole(ctx))))
}

// @Summary Candidate history
// @Tags Candidate
// @Description Audit trail of the candidate in insertion order
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param	body body	 candidateapimodels.HistoryFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/history [post]
func (c *candidateApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.HistoryFilter
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	rec, err := applicant.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list, rowCount := applicanthistory.List(rec, payload)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Add comment
// @Tags Candidate
// @Description Add an operator comment to the candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param	body body	 candidateapimodels.CommentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dbmodels.Candidate}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/comment [put]
func (c *candidateApiController) comment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.CommentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicant.Instance.AddComment(ctx.UserContext(), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Submit pre-employment test
// @Tags Candidate
// @Description Record the pre-employment test result of the calling candidate, once
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param	body body	 candidateapimodels.TestResultData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dbmodels.Candidate}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/test [put]
func (c *candidateApiController) test(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.TestResultData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicant.Instance.RecordTestResult(ctx.UserContext(), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Upload evidence
// @Tags Candidate
// @Description Upload a surveillance report or rejection evidence. The returned reference is passed as "evidence" to the transition.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param   file formData file true "evidence file"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 413 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/space/candidate/{id}/evidence [post]
func (c *candidateApiController) uploadEvidence(ctx *fiber.Ctx) error {
	if filestorage.Instance == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("file storage is not configured"))
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if _, err = applicant.Instance.GetByID(ctx.UserContext(), id); err != nil {
		return c.SendError(ctx, err)
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is not attached"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("could not read the file"))
	}
	defer file.Close()
	ref, err := filestorage.Instance.UploadEvidence(ctx.UserContext(), id, fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType), file, fileHeader.Size)
	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(ref))
}
