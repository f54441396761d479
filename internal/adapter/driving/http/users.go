package http

import (
	"errors"
	"net/http"

	"github.com/animo-meet/backend/internal/auth"
	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/rs/zerolog/log"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}

	err := h.Accounts.Register(req.Name, req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		h.respondJSON(w, http.StatusConflict, messageResponse{Message: "User already exists, try a different username"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.respondJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid registration details"})
	case err != nil:
		log.Error().Err(err).Msg("register failed")
		h.respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
	default:
		h.respondJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
	}
}

type loginResponse struct {
	Token    string `json:"token"`
	Message  string `json:"message"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}
	if err := auth.ValidateLogin(req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, messageResponse{Message: "Please provide all credentials"})
		return
	}

	token, identity, err := h.Accounts.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "invalid credentials"})
	case err != nil:
		log.Error().Err(err).Msg("login failed")
		h.respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
	default:
		h.respondJSON(w, http.StatusOK, loginResponse{
			Token:    token,
			Message:  "login successful",
			Username: identity.Username,
			Name:     identity.Name,
		})
	}
}

type verifyResponse struct {
	Message  string `json:"message"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func (h *Handler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		h.respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "no token provided"})
		return
	}
	h.respondJSON(w, http.StatusOK, verifyResponse{
		Message:  "Token validated",
		Name:     identity.Name,
		Username: identity.Username,
	})
}
