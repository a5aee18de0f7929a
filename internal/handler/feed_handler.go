package handler

import (
	"net/http"
	"strings"

	"mdd-api/internal/middleware"
	"mdd-api/internal/service"
)

type FeedHandler struct {
	service *service.FeedService
}

func NewFeedHandler(service *service.FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

// Get returns the feed newest-first unless ?sort=asc is given.
func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		authenticationRequired(w)
		return
	}

	ascending := strings.EqualFold(r.URL.Query().Get("sort"), "asc")

	feed, err := h.service.GetFeed(r.Context(), userID, ascending)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, feed)
}
