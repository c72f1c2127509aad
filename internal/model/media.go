package model

import "errors"

// UploadResult is returned after a successful media upload.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Upload limits and normalization targets.
const (
	MaxAvatarSizeBytes    = 5 * 1024 * 1024
	MaxPostImageSizeBytes = 10 * 1024 * 1024

	AvatarWidth  = 200
	AvatarHeight = 200

	// Post photos keep their aspect ratio but are capped at this width.
	PostImageMaxWidth = 1280

	AvatarFolder    = "avatars"
	PostImageFolder = "posts"

	ContentTypeJPEG = "image/jpeg"

	AvatarCacheControl    = "public, max-age=31536000"
	PostImageCacheControl = "public, max-age=31536000"
)

// IsAllowedImageType reports whether the content type is an accepted upload format.
func IsAllowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}

// Media errors
var (
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size")
	ErrInvalidImageType = errors.New("unsupported image type")
)
