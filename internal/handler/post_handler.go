package handler

import (
	"encoding/json"
	"net/http"

	"mdd-api/internal/middleware"
	"mdd-api/internal/model"
	"mdd-api/internal/service"
)

type PostHandler struct {
	service *service.PostService
}

func NewPostHandler(service *service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		authenticationRequired(w)
		return
	}

	var payload model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidJSONBody(w)
		return
	}

	created, err := h.service.CreatePost(r.Context(), userID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, created)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, post)
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		authenticationRequired(w)
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidJSONBody(w)
		return
	}

	if err := h.service.AddComment(r.Context(), userID, postID, payload); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.MessageResponse{Message: "comment created"})
}
