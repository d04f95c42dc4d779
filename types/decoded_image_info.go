package types

import "mime/multipart"

type DecodedImageInfo struct {
	File        multipart.File
	Name        string
	Size        int64
	Extension   string
	ContentType string
}
