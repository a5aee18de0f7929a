package handler

import (
	"encoding/json"
	"net/http"

	"mdd-api/internal/auth"
	"mdd-api/internal/model"
	"mdd-api/internal/service"
)

// AuthHandler exposes the credential endpoints. The refresh token travels
// exclusively in an HttpOnly cookie; response bodies carry the access token
// only.
type AuthHandler struct {
	service *service.AuthService
	cookies *auth.CookiePolicy
}

func NewAuthHandler(service *service.AuthService, cookies *auth.CookiePolicy) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidJSONBody(w)
		return
	}

	user, err := h.service.Register(r.Context(), payload.Email, payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.RegisterResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidJSONBody(w)
		return
	}

	result, err := h.service.Login(r.Context(), payload.Identifier, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, h.cookies.RefreshCookie(result.RefreshToken))
	writeSuccess(w, http.StatusOK, model.LoginResponse{
		Token: result.AccessToken,
		User:  result.User,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Refresh(r.Context(), h.refreshTokenFromCookie(r))
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, h.cookies.RefreshCookie(result.RefreshToken))
	writeSuccess(w, http.StatusOK, model.RefreshResponse{Token: result.AccessToken})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), h.refreshTokenFromCookie(r)); err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, h.cookies.ClearCookie())
	writeSuccess(w, http.StatusOK, model.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) refreshTokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(h.cookies.Name())
	if err != nil {
		return ""
	}
	return cookie.Value
}
