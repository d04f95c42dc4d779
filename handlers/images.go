package handlers

import (
	"errors"
	"net/http"

	"image_table_api/gallery"
	"image_table_api/middlewares"
	"image_table_api/notifications"
	"image_table_api/tools"
	"image_table_api/types"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

type selectionRequest struct {
	Ids []string `json:"ids" binding:"required"`
}

// GetImagesHandler signals the sign-in of the caller to their table, which
// refetches the rows from storage.
func GetImagesHandler(logger tools.Logger, tables *gallery.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			tools.LogError(logger, c, http.StatusUnauthorized, errors.New("no signed-in user"))
			return
		}

		table := tables.Table(user.UID)
		if err := table.HandleAuthState(c.Request.Context(), user); err != nil {
			tools.LogError(logger, c, http.StatusBadGateway, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"rows": table.Rows(),
		})
	}
}

func GetSelectionHandler(logger tools.Logger, tables *gallery.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			tools.LogError(logger, c, http.StatusUnauthorized, errors.New("no signed-in user"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"selection": tables.Table(user.UID).Selection(),
		})
	}
}

func SetSelectionHandler(logger tools.Logger, tables *gallery.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			tools.LogError(logger, c, http.StatusUnauthorized, errors.New("no signed-in user"))
			return
		}

		var req selectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tools.LogError(logger, c, http.StatusBadRequest, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"selection": tables.Table(user.UID).SetSelection(req.Ids),
		})
	}
}

func DeleteSelectedImagesHandler(logger tools.Logger, tables *gallery.Registry, notifier *notifications.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			tools.LogError(logger, c, http.StatusUnauthorized, errors.New("no signed-in user"))
			return
		}

		table := tables.Table(user.UID)

		deletedIds, err := table.DeleteSelected(c.Request.Context(), user)

		var deleteErr *gallery.DeleteError
		switch {
		case errors.As(err, &deleteErr):
			// Already logged by the table
			c.JSON(http.StatusBadGateway, gin.H{
				"error":      err.Error(),
				"deletedIds": deleteErr.Deleted,
				"failedIds":  deleteErr.Failed,
			})
			return
		case err != nil:
			tools.LogError(logger, c, http.StatusInternalServerError, err)
			return
		}

		if len(deletedIds) > 0 {
			notifier.SendNotificationToClient(c.Request.Context(), user.UID, types.NotificationMessage{
				Event: types.NOTIFICATION_EVENT_DELETED,
				Ids:   deletedIds,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"deletedIds": deletedIds,
			"rows":       table.Rows(),
		})
	}
}

// UploadImagesHandler stores each validated file under the caller's folder
// and appends it to their table.
func UploadImagesHandler(logger tools.Logger, tables *gallery.Registry, bucket tools.ImageBucket, notifier *notifications.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			tools.LogError(logger, c, http.StatusUnauthorized, errors.New("no signed-in user"))
			return
		}

		fileInfosInterface, exists := c.Get(types.CONTEXT_FILE_INFOS_KEY)
		if !exists {
			tools.LogError(logger, c, http.StatusInternalServerError, errors.New("error getting fileInfos from context"))
			return
		}

		fileInfos, ok := fileInfosInterface.([]map[string]interface{})
		if !ok {
			tools.LogError(logger, c, http.StatusInternalServerError, errors.New("error casting fileInfos to []map[string]interface{}"))
			return
		}

		table := tables.Table(user.UID)

		uploadedIds := []string{}
		failedIds := []string{}

		for _, fileInfo := range fileInfos {
			decodedFileInfo, err := tools.DecodeImageInfo(fileInfo)
			if err != nil {
				tools.LogError(logger, c, http.StatusInternalServerError, err)
				return
			}

			reader, err := tools.NormalizeJpegOrientation(logger, decodedFileInfo.File, decodedFileInfo.ContentType)
			if err != nil {
				logger.Log(logging.Entry{
					Severity: logging.Error,
					Payload:  "Error correcting image orientation",
					Labels:   map[string]string{"error": err.Error(), "name": decodedFileInfo.Name},
				})
				failedIds = append(failedIds, decodedFileInfo.Name)
				continue
			}

			storagePath := tools.ObjectPath(user.UID, decodedFileInfo.Name)
			url, err := bucket.UploadObject(c.Request.Context(), storagePath, decodedFileInfo.ContentType, reader)
			if err != nil {
				logger.Log(logging.Entry{
					Severity: logging.Error,
					Payload:  "Error uploading image to storage",
					Labels:   map[string]string{"error": err.Error(), "name": decodedFileInfo.Name},
				})
				failedIds = append(failedIds, decodedFileInfo.Name)
				continue
			}

			table.Add(tools.NewImageRow(user, decodedFileInfo.Name, url))
			uploadedIds = append(uploadedIds, decodedFileInfo.Name)
		}

		status := http.StatusOK
		if len(uploadedIds) == 0 {
			status = http.StatusBadGateway
		} else {
			notifier.SendNotificationToClient(c.Request.Context(), user.UID, types.NotificationMessage{
				Event: types.NOTIFICATION_EVENT_UPLOADED,
				Ids:   uploadedIds,
			})
		}

		c.JSON(status, gin.H{
			"uploadedIds": uploadedIds,
			"failedIds":   failedIds,
			"rows":        table.Rows(),
		})
	}
}
