package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"corrigeaqui/internal/httputil"
	"corrigeaqui/internal/model"
	"corrigeaqui/internal/service"
	"corrigeaqui/internal/transport/http/middleware"
)

type LikeHandler struct {
	engagementService *service.EngagementService
}

func NewLikeHandler(engagementService *service.EngagementService) *LikeHandler {
	return &LikeHandler{engagementService: engagementService}
}

// LikePost handles POST /posts/{id}/likes
// A second like from the same user is a conflict, not a second entry.
func (h *LikeHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	err = h.engagementService.LikePost(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteConflict(w, "Post already liked")
		default:
			log.Printf("[ERROR] LikePost handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to like post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Post liked",
	})
}

// UnlikePost handles DELETE /posts/{id}/likes
// Removing an absent like still succeeds.
func (h *LikeHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	err = h.engagementService.UnlikePost(r.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] UnlikePost handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to unlike post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPostLikes handles GET /posts/{id}/likes
// Returns the ledger count and, for authenticated viewers, their own flag.
func (h *LikeHandler) GetPostLikes(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	count, err := h.engagementService.PostLikeCount(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] GetPostLikes handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to get likes")
		return
	}

	response := map[string]interface{}{"count": count}
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		liked, err := h.engagementService.HasLikedPost(r.Context(), userID, postID)
		if err == nil {
			response["liked"] = liked
		}
	}

	httputil.WriteJSON(w, http.StatusOK, response)
}

// LikeComment handles POST /comments/{commentId}/likes
func (h *LikeHandler) LikeComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	err = h.engagementService.LikeComment(r.Context(), userID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteConflict(w, "Comment already liked")
		default:
			log.Printf("[ERROR] LikeComment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, "Failed to like comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Comment liked",
	})
}

// UnlikeComment handles DELETE /comments/{commentId}/likes
func (h *LikeHandler) UnlikeComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	err = h.engagementService.UnlikeComment(r.Context(), userID, commentID)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "Comment not found")
			return
		}
		log.Printf("[ERROR] UnlikeComment handler: user=%d comment=%d err=%v", userID, commentID, err)
		httputil.WriteInternalError(w, "Failed to unlike comment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCommentLikes handles GET /comments/{commentId}/likes
func (h *LikeHandler) GetCommentLikes(w http.ResponseWriter, r *http.Request) {
	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	count, err := h.engagementService.CommentLikeCount(r.Context(), commentID)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "Comment not found")
			return
		}
		log.Printf("[ERROR] GetCommentLikes handler: comment=%d err=%v", commentID, err)
		httputil.WriteInternalError(w, "Failed to get likes")
		return
	}

	response := map[string]interface{}{"count": count}
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		liked, err := h.engagementService.HasLikedComment(r.Context(), userID, commentID)
		if err == nil {
			response["liked"] = liked
		}
	}

	httputil.WriteJSON(w, http.StatusOK, response)
}
