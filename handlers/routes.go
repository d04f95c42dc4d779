package handlers

import (
	"net/http"

	"image_table_api/gallery"
	"image_table_api/middlewares"
	"image_table_api/notifications"
	"image_table_api/tools"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Logger         tools.Logger
	Verifier       middlewares.TokenVerifier
	Bucket         tools.ImageBucket
	Tables         *gallery.Registry
	Notifier       *notifications.Notifier
	MaxUploadBytes int64
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	imagesGroup := r.Group("/api/images")
	imagesGroup.Use(middlewares.AuthMiddleware(deps.Logger, deps.Verifier))
	imagesGroup.GET("", GetImagesHandler(deps.Logger, deps.Tables))
	imagesGroup.POST("", middlewares.ImageValidationMiddleware(deps.Logger, deps.MaxUploadBytes), UploadImagesHandler(deps.Logger, deps.Tables, deps.Bucket, deps.Notifier))
	imagesGroup.GET("/selection", GetSelectionHandler(deps.Logger, deps.Tables))
	imagesGroup.PUT("/selection", SetSelectionHandler(deps.Logger, deps.Tables))
	imagesGroup.DELETE("/selection", DeleteSelectedImagesHandler(deps.Logger, deps.Tables, deps.Notifier))

	messagingGroup := r.Group("/api/messaging")
	messagingGroup.Use(middlewares.AuthMiddleware(deps.Logger, deps.Verifier))
	messagingGroup.POST("", SetMessagingRegistrationToken(deps.Logger, deps.Notifier))
}
