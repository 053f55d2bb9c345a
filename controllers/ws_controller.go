package controllers

import (
	"hotelhub/middleware"
	"hotelhub/response"
	"hotelhub/services/logger"
	"hotelhub/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

type WSController struct {
	Auth   middleware.Authenticator
	Melody *melody.Melody
	Logger logger.Logger
}

func NewWSController(auth middleware.Authenticator, m *melody.Melody, log logger.Logger) WSController {
	return WSController{Auth: auth, Melody: m, Logger: log}
}

// Connect upgrades to a websocket bound to the user named by ?token=.
// Browsers cannot set headers on a websocket handshake.
func (w WSController) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c)
		return
	}
	user, err := w.Auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		response.FromError(c, err)
		return
	}
	keys := map[string]interface{}{notification.SessionUserKey: user.ID}
	if err := w.Melody.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		w.Logger.Error("websocket user %d: %v", user.ID, err)
	}
}
