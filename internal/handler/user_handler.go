package handler

import (
	"fmt"
	"net/http"

	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/service"
	"github.com/go-chi/chi/v5"
)

// UserHandler covers the admin back office edits on startup accounts.
type UserHandler struct {
	users service.UserStore
}

func NewUserHandler(users service.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	startups, err := h.users.FindStartups()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	responses := make([]models.UserResponse, 0, len(startups))
	for i := range startups {
		responses = append(responses, startups[i].ToResponse())
	}
	writeJSON(w, http.StatusOK, map[string]any{"startups": responses})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByID(chi.URLParam(r, "userId"))
	if err != nil || user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user.ToResponse())
}

// Update patches the fields the admin back office edits. Only fields
// present in the body are written.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	var req struct {
		Name             *string `json:"name"`
		Phone            *string `json:"phone"`
		CNPJ             *string `json:"cnpj"`
		WhatsAppGroupID  *string `json:"whatsappGroupId"`
		DocumentConfigID *string `json:"documentConfigId"`
		Status           *string `json:"status"`
		Deadline         *string `json:"deadline"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil || user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.CNPJ != nil {
		fields["cnpj"] = *req.CNPJ
	}
	if req.WhatsAppGroupID != nil {
		fields["whatsappGroupId"] = *req.WhatsAppGroupID
	}
	if req.DocumentConfigID != nil {
		fields["documentConfigId"] = *req.DocumentConfigID
	}
	if req.Status != nil {
		if !validStartupStatus(*req.Status) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", *req.Status))
			return
		}
		fields["status"] = *req.Status
	}
	if req.Deadline != nil {
		fields["deadline"] = *req.Deadline
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	if err := h.users.Update(userID, fields); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	updated, err := h.users.FindByID(userID)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "reload updated user failed")
		return
	}
	writeJSON(w, http.StatusOK, updated.ToResponse())
}

func validStartupStatus(s string) bool {
	switch s {
	case models.StartupStatusPending, models.StartupStatusInProgress,
		models.StartupStatusCompleted, models.StartupStatusUnderReview:
		return true
	}
	return false
}
