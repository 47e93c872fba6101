package handler

import (
	"errors"
	"net/http"

	"github.com/fundbase/docportal/internal/auth"
	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/service"
	"github.com/go-chi/chi/v5"
)

type ConfigHandler struct {
	svc *service.ConfigService
}

func NewConfigHandler(svc *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

func (h *ConfigHandler) List(w http.ResponseWriter, r *http.Request) {
	configs, err := h.svc.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"configs": configs})
}

func (h *ConfigHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	var req struct {
		Name        string                    `json:"name"`
		Description string                    `json:"description"`
		Categories  []models.DocumentCategory `json:"categories"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cfg, err := h.svc.Create(req.Name, req.Description, claims.Email, req.Categories)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, cfg)
}

func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Get(chi.URLParam(r, "configId"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string                    `json:"name"`
		Description string                    `json:"description"`
		Categories  []models.DocumentCategory `json:"categories"`
		Revision    int                       `json:"revision"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cfg, err := h.svc.Update(chi.URLParam(r, "configId"), req.Name, req.Description, req.Categories, req.Revision)
	switch {
	case errors.Is(err, service.ErrRevisionConflict):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, service.ErrConfigNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *ConfigHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "configId")
	if err := h.svc.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
