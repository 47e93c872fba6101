package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/service"
	"github.com/go-chi/chi/v5"
)

type MessagingHandler struct {
	svc *service.MessagingService
}

func NewMessagingHandler(svc *service.MessagingService) *MessagingHandler {
	return &MessagingHandler{svc: svc}
}

// Reminder sends the reminder template to one startup.
func (h *MessagingHandler) Reminder(w http.ResponseWriter, r *http.Request) {
	startupID := chi.URLParam(r, "startupId")
	n, err := h.svc.SendReminder(r.Context(), startupID)
	if err != nil {
		writeError(w, sendErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func sendErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrStartupNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoTarget):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// Message sends either a typed template or a custom body.
func (h *MessagingHandler) Message(w http.ResponseWriter, r *http.Request) {
	startupID := chi.URLParam(r, "startupId")
	var req struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		n   *models.Notification
		err error
	)
	if req.Message != "" {
		n, err = h.svc.SendCustom(r.Context(), startupID, req.Message)
	} else {
		n, err = h.svc.SendTemplate(r.Context(), startupID, req.Type)
	}
	if err != nil {
		writeError(w, sendErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// Preview renders a template for a startup without sending it.
func (h *MessagingHandler) Preview(w http.ResponseWriter, r *http.Request) {
	startupID := chi.URLParam(r, "startupId")
	tplType := r.URL.Query().Get("type")
	if tplType == "" {
		tplType = models.TemplateReminder
	}
	rendered, err := h.svc.Preview(startupID, tplType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"type": tplType, "message": rendered})
}

func (h *MessagingHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SendBulkReminders(r.Context())
	if err != nil {
		// The run may have sent part of the batch before failing; the
		// admin needs those counts to know where it stopped.
		resp := map[string]any{"error": err.Error()}
		if result != nil {
			resp["result"] = result
		}
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *MessagingHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 100
	}
	log, err := h.svc.Log(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": log})
}

func (h *MessagingHandler) StartupNotifications(w http.ResponseWriter, r *http.Request) {
	log, err := h.svc.LogByStartup(chi.URLParam(r, "startupId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": log})
}
