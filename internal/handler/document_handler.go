package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/fundbase/docportal/internal/auth"
	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/service"
	"github.com/go-chi/chi/v5"
)

type DocumentHandler struct {
	svc   *service.DocumentService
	users service.UserStore
}

func NewDocumentHandler(svc *service.DocumentService, users service.UserStore) *DocumentHandler {
	return &DocumentHandler{svc: svc, users: users}
}

// List returns the caller's documents; admins may pass ?startupId= to
// inspect any startup.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	startupID := claims.UserID
	if claims.Role == models.RoleAdmin {
		if q := r.URL.Query().Get("startupId"); q != "" {
			startupID = q
		}
	}
	docs, err := h.svc.ListByStartup(startupID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	if err := r.ParseMultipartForm(12 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	user, err := h.users.FindByID(claims.UserID)
	if err != nil || user == nil {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	isExtra, _ := strconv.ParseBool(r.FormValue("isExtra"))
	contentType := header.Header.Get("Content-Type")

	doc, err := h.svc.Upload(r.Context(), service.UploadRequest{
		StartupID:        claims.UserID,
		ConfigID:         user.DocumentConfigID,
		Category:         r.FormValue("category"),
		Item:             r.FormValue("document"),
		IsExtra:          isExtra,
		Data:             data,
		ContentType:      contentType,
		OriginalFilename: header.Filename,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	docID := chi.URLParam(r, "docId")

	reader, doc, err := h.svc.Download(r.Context(), docID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	defer reader.Close()

	if claims.Role != models.RoleAdmin && doc.StartupID != claims.UserID {
		writeError(w, http.StatusForbidden, "not your document")
		return
	}

	w.Header().Set("Content-Type", doc.FileType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename))
	if doc.FileSize > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.FileSize, 10))
	}
	io.Copy(w, reader)
}

// UpdateStatus is the admin review action.
func (h *DocumentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	docID := chi.URLParam(r, "docId")
	if err := h.svc.UpdateStatus(docID, req.Status); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": docID, "status": req.Status})
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	docID := chi.URLParam(r, "docId")

	doc, err := h.svc.Get(docID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if claims.Role != models.RoleAdmin && doc.StartupID != claims.UserID {
		writeError(w, http.StatusForbidden, "not your document")
		return
	}
	if err := h.svc.Delete(r.Context(), docID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": docID})
}
