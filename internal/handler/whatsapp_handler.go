package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fundbase/docportal/internal/auth"
	"github.com/fundbase/docportal/internal/service"
	"github.com/fundbase/docportal/internal/whatsapp"
)

// WhatsAppHandler exposes the admin-facing gateway operations: group
// discovery, instance health, and the stored credential override.
type WhatsAppHandler struct {
	gw *service.GatewayService
}

func NewWhatsAppHandler(gw *service.GatewayService) *WhatsAppHandler {
	return &WhatsAppHandler{gw: gw}
}

func (h *WhatsAppHandler) Groups(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	groups, err := h.gw.FetchGroups(r.Context(), page, pageSize)
	if err != nil {
		if errors.Is(err, whatsapp.ErrNotConfigured) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *WhatsAppHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.gw.InstanceStatus(r.Context())
	if err != nil {
		if errors.Is(err, whatsapp.ErrNotConfigured) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *WhatsAppHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.gw.Settings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *WhatsAppHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	var req struct {
		BaseURL     string `json:"baseUrl"`
		ClientToken string `json:"clientToken"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.gw.SaveSettings(req.BaseURL, req.ClientToken, claims.Email); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"saved": "whatsapp_gateway"})
}
