package tools

import (
	"errors"
	"mime/multipart"
	"net/url"
	"path"
	"strings"

	"image_table_api/types"
)

// UserPrefix is the storage folder holding a user's images.
func UserPrefix(uid string) string {
	return types.FIREBASE_STORAGE_IMAGES_FOLDER + uid + "/"
}

// ObjectPath is the storage path of one of a user's images.
func ObjectPath(uid, name string) string {
	return UserPrefix(uid) + name
}

// ObjectName returns the last segment of a storage path.
func ObjectName(storagePath string) string {
	return path.Base(storagePath)
}

// ImageType returns the text after the last dot of an object name, or nil
// when the name has no extension.
func ImageType(name string) *string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return nil
	}
	ext := name[i+1:]
	return &ext
}

// DownloadUrl builds a Firebase Storage download URL for an object.
func DownloadUrl(bucket, storagePath, downloadToken string) string {
	return types.FIREBASE_STORAGE_DOWNLOAD_HOST + "/v0/b/" + bucket + "/o/" + url.PathEscape(storagePath) + "?alt=media&token=" + downloadToken
}

// NewImageRow builds the table row for a stored object.
func NewImageRow(user *types.User, name, imageUrl string) types.ImageRow {
	return types.ImageRow{
		Id:          name,
		ImageTitle:  name,
		CreatorName: user.CreatorName(),
		ImageType:   ImageType(name),
		ImageUrl:    imageUrl,
	}
}

func DecodeImageInfo(fileInfo map[string]interface{}) (types.DecodedImageInfo, error) {
	fileInterface, exists := fileInfo["file"]
	if !exists {
		return types.DecodedImageInfo{}, errors.New("error getting file from context")
	}

	nameRaw, exists := fileInfo["name"]
	if !exists {
		return types.DecodedImageInfo{}, errors.New("error getting name from context")
	}

	extensionRaw, exists := fileInfo["extension"]
	if !exists {
		return types.DecodedImageInfo{}, errors.New("error getting extension from context")
	}

	contentTypeRaw, exists := fileInfo["content_type"]
	if !exists {
		return types.DecodedImageInfo{}, errors.New("error getting content type from context")
	}

	file, ok := fileInterface.(multipart.File)
	if !ok {
		return types.DecodedImageInfo{}, errors.New("error casting file to multipart.File")
	}

	name, ok := nameRaw.(string)
	if !ok {
		return types.DecodedImageInfo{}, errors.New("error casting name to string")
	}

	extension, ok := extensionRaw.(string)
	if !ok {
		return types.DecodedImageInfo{}, errors.New("error casting extension to string")
	}

	contentType, ok := contentTypeRaw.(string)
	if !ok {
		return types.DecodedImageInfo{}, errors.New("error casting content type to string")
	}

	size, _ := fileInfo["size"].(int64)

	return types.DecodedImageInfo{
		File:        file,
		Name:        name,
		Size:        size,
		Extension:   extension,
		ContentType: contentType,
	}, nil
}
