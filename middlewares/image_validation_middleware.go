package middlewares

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"image_table_api/tools"
	"image_table_api/types"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Validate file type middleware, only allow images up to maxBytes each
func ImageValidationMiddleware(logger tools.Logger, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			logger.Log(logging.Entry{
				Severity: logging.Error,
				Payload:  "Failed to get the multipart form data from the request: " + err.Error(),
			})

			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No files are received"})
			return
		}

		var fileInfos []map[string]interface{}

		for _, fileHeaders := range form.File {
			for _, file := range fileHeaders {
				fileInfos, err = validateAndProcessFile(file, maxBytes, fileInfos)
				if err != nil {
					logger.Log(logging.Entry{
						Severity: logging.Error,
						Payload:  "Failed to validate and process file: " + err.Error(),
					})

					closeFileInfos(fileInfos)
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
		}

		if len(fileInfos) == 0 {
			logger.Log(logging.Entry{
				Severity: logging.Error,
				Payload:  "No file is received",
			})

			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No file is received"})
			return
		}

		c.Set(types.CONTEXT_FILE_INFOS_KEY, fileInfos)
		c.Next()
		closeFileInfos(fileInfos)
	}
}

func validateAndProcessFile(file *multipart.FileHeader, maxBytes int64, fileInfos []map[string]interface{}) ([]map[string]interface{}, error) {
	name := filepath.Base(strings.ReplaceAll(file.Filename, "\\", "/"))
	if name == "." || name == "/" || name == "" || strings.HasPrefix(name, ".") {
		return fileInfos, fmt.Errorf("invalid file name: %q", file.Filename)
	}

	if file.Size > maxBytes {
		return fileInfos, fmt.Errorf("file too large: maximum size %d bytes", maxBytes)
	}

	f, err := file.Open()
	if err != nil {
		return fileInfos, fmt.Errorf("error opening file: %v", err)
	}

	// Read only the first 512 bytes to detect content type
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		f.Close()
		return fileInfos, fmt.Errorf("error reading file: %v", err)
	}

	contentType := http.DetectContentType(buf[:n])
	if !allowedContentTypes[contentType] {
		f.Close()
		return fileInfos, fmt.Errorf("unsupported file type: %v", contentType)
	}

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return fileInfos, fmt.Errorf("error seeking file: %v", err)
	}

	fileInfo := map[string]interface{}{
		"file":         f,
		"name":         name,
		"size":         file.Size,
		"content_type": contentType,
		"extension":    filepath.Ext(name),
	}

	return append(fileInfos, fileInfo), nil
}

func closeFileInfos(fileInfos []map[string]interface{}) {
	for _, fileInfo := range fileInfos {
		if f, ok := fileInfo["file"].(multipart.File); ok {
			f.Close()
		}
	}
}
