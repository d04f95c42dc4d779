package handlers

import (
	"errors"
	"net/http"

	"image_table_api/middlewares"
	"image_table_api/notifications"
	"image_table_api/tools"

	"github.com/gin-gonic/gin"
)

// SetMessagingRegistrationToken sets the messaging registration token for the signed-in user's client
func SetMessagingRegistrationToken(logger tools.Logger, notifier *notifications.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			tools.LogError(logger, c, http.StatusUnauthorized, errors.New("no signed-in user"))
			return
		}

		token := c.PostForm("token")
		if token == "" {
			tools.LogError(logger, c, http.StatusBadRequest, errors.New("token is required"))
			return
		}

		if err := notifier.RegisterToken(c.Request.Context(), user.UID, token); err != nil {
			tools.LogError(logger, c, http.StatusInternalServerError, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
}
