package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CheckCode claims a meeting code for the authenticated caller.
func (h *Handler) CheckCode(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		h.respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "no token provided"})
		return
	}
	code := chi.URLParam(r, "meetingCode")

	err := h.Meetings.Create(code, identity.Username)
	switch {
	case errors.Is(err, domain.ErrMeetingExists):
		h.respondJSON(w, http.StatusConflict, messageResponse{Message: "A meeting with this code already exists. Try generating a new code"})
	case err != nil:
		log.Error().Err(err).Str("code", code).Msg("meeting creation failed")
		h.respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
	default:
		h.respondJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("new meeting created successfully, code: %s", code)})
	}
}

// CheckMeet is an unauthenticated existence probe used by the join page.
func (h *Handler) CheckMeet(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "meetingCode")

	exists, err := h.Meetings.Exists(code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("meeting lookup failed")
		h.respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
		return
	}
	if !exists {
		h.respondJSON(w, http.StatusNotFound, messageResponse{Message: "No such meeting found"})
		return
	}
	h.respondJSON(w, http.StatusOK, messageResponse{Message: "Meeting found"})
}

func (h *Handler) CheckHost(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	code := r.URL.Query().Get("meetingCode")

	isHost, err := h.Meetings.IsHost(code, username)
	if err != nil && !errors.Is(err, domain.ErrMeetingNotFound) {
		log.Error().Err(err).Str("code", code).Msg("host lookup failed")
		h.respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
		return
	}
	if !isHost {
		h.respondJSON(w, http.StatusForbidden, messageResponse{Message: fmt.Sprintf("%s is not the host of this meeting", username)})
		return
	}
	h.respondJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("%s is host of this meeting", username)})
}

func (h *Handler) PrevMeets(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	codes, err := h.Meetings.HostedBy(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("previous meetings lookup failed")
		h.respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
		return
	}
	if codes == nil {
		codes = []string{}
	}
	h.respondJSON(w, http.StatusOK, codes)
}
