package handler

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"corrigeaqui/internal/httputil"
	"corrigeaqui/internal/model"
	"corrigeaqui/internal/service"
	"corrigeaqui/internal/transport/http/middleware"
)

type uploadFunc func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadAvatar handles POST /media/avatars
// Accepts a multipart "file" field, normalizes it, and uploads to storage.
func (h *MediaHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, model.MaxAvatarSizeBytes, h.mediaService.UploadAvatar)
}

// UploadPostImage handles POST /media/posts
func (h *MediaHandler) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, model.MaxPostImageSizeBytes, h.mediaService.UploadPostImage)
}

func (h *MediaHandler) upload(w http.ResponseWriter, r *http.Request, maxSize int64, fn uploadFunc) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteBadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	result, err := fn(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "File exceeds maximum allowed size")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type")
		default:
			log.Printf("[ERROR] Upload handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to upload file")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, result)
}
