package ws

import (
	wsclient "facility-desk-backend/lib/ws/client"
	connectionhub "facility-desk-backend/lib/ws/hub/connection-hub"
	"facility-desk-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app fiber.Router) {
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("wsUserID", middleware.GetCaller(ctx).UserID)
		return ctx.Next()
	})
	app.Get("/ws", websocket.New(notificationFeedHandler))
}

// @Summary Лента уведомлений
// @Tags Уведомления
// @Description При подключении отправляются непрочитанные уведомления, затем новые
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401
// @Failure 426
// @router /api/v1/ws [get]
func notificationFeedHandler(c *websocket.Conn) {
	userID := c.Locals("wsUserID").(uint)
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer connectionhub.Instance.DeleteClient(userID, c)
	client.Dispatch()
}
