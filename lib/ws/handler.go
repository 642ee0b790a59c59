package ws

import (
	wsclient "smarthire-backend/lib/ws/client"
	connectionhub "smarthire-backend/lib/ws/hub/connection-hub"
	"smarthire-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(router fiber.Router) {
	router.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		actor := middleware.GetActor(ctx)
		if !actor.Role.IsOperator() {
			return ctx.SendStatus(fiber.StatusForbidden)
		}
		ctx.Locals("userID", actor.ID)
		return ctx.Next()
	})
	router.Get("/", websocket.New(changeFeedHandler))
}

// @Summary Candidate change feed
// @Tags Websocket
// @Description Pushes {"code":"candidate_changed","msg":"<candidate id>"} on every candidate write
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 403
// @Failure 426
// @router /api/v1/ws [get]
func changeFeedHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(string)
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer func() {
		connectionhub.Instance.DeleteConn(userID, c)
	}()
	client.Dispatch()
}
