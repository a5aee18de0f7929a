package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mdd-api/internal/middleware"
	"mdd-api/internal/service"
	"mdd-api/pkg/apierror"
)

type SubjectHandler struct {
	service *service.SubjectService
}

func NewSubjectHandler(service *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{service: service}
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		authenticationRequired(w)
		return
	}

	subjects, err := h.service.ListSubjects(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, subjects)
}

func (h *SubjectHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	h.setSubscription(w, r, true)
}

func (h *SubjectHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	h.setSubscription(w, r, false)
}

func (h *SubjectHandler) setSubscription(w http.ResponseWriter, r *http.Request, subscribe bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		authenticationRequired(w)
		return
	}

	subjectID, err := pathID(r, "subjectID")
	if err != nil {
		writeError(w, err)
		return
	}

	var status any
	if subscribe {
		status, err = h.service.Subscribe(r.Context(), userID, subjectID)
	} else {
		status, err = h.service.Unsubscribe(r.Context(), userID, subjectID)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, status)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.BadRequest("invalid identifier in path", name)
	}
	return id, nil
}
