package handler

import (
	"net/http"
	"time"

	"github.com/fundbase/docportal/internal/auth"
	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/progress"
	"github.com/fundbase/docportal/internal/service"
)

type DashboardHandler struct {
	users   service.UserStore
	configs *service.ConfigService
	docs    *service.DocumentService
}

func NewDashboardHandler(users service.UserStore, configs *service.ConfigService, docs *service.DocumentService) *DashboardHandler {
	return &DashboardHandler{users: users, configs: configs, docs: docs}
}

// Dashboard is the startup's home view: profile, resolved checklist,
// uploads, and progress.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	user, err := h.users.FindByID(claims.UserID)
	if err != nil || user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	cfg, err := h.configs.Resolve(user.DocumentConfigID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	docs, err := h.docs.ListByStartup(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary := progress.Overall(cfg, docs)

	writeJSON(w, http.StatusOK, map[string]any{
		"user":      user.ToResponse(),
		"config":    cfg,
		"documents": docs,
		"progress":  summary,
		"canSubmit": summary.Complete(),
	})
}

// Submit is the completion gate: every required document must be uploaded
// before the startup moves to review.
func (h *DashboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	user, err := h.users.FindByID(claims.UserID)
	if err != nil || user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	cfg, err := h.configs.Resolve(user.DocumentConfigID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	docs, err := h.docs.ListByStartup(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary := progress.Overall(cfg, docs)
	if !summary.Complete() {
		_, missing := progress.Status(cfg, docs)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "required documents are still missing",
			"missing": missing,
		})
		return
	}

	if err := h.users.Update(user.ID, map[string]any{"status": models.StartupStatusUnderReview}); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": models.StartupStatusUnderReview})
}

type overviewEntry struct {
	User     models.UserResponse `json:"user"`
	Progress progress.Summary    `json:"progress"`
}

// Overview is the admin landing page: every startup with its progress,
// plus headline counts.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	startups, err := h.users.FindStartups()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	activeCutoff := time.Now().AddDate(0, 0, -7)
	entries := make([]overviewEntry, 0, len(startups))
	active, completed, pending := 0, 0, 0

	for i := range startups {
		startup := &startups[i]
		cfg, err := h.configs.Resolve(startup.DocumentConfigID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		docs, err := h.docs.ListByStartup(startup.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		summary := progress.Overall(cfg, docs)
		entries = append(entries, overviewEntry{User: startup.ToResponse(), Progress: summary})

		if t, err := time.Parse(time.RFC3339, startup.LastLogin); err == nil && t.After(activeCutoff) {
			active++
		}
		switch startup.Status {
		case models.StartupStatusCompleted:
			completed++
		case models.StartupStatusPending:
			pending++
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"startups":  entries,
		"total":     len(startups),
		"active":    active,
		"completed": completed,
		"pending":   pending,
	})
}
