package router

import (
	"github.com/fundbase/docportal/internal/auth"
	"github.com/fundbase/docportal/internal/handler"
	mw "github.com/fundbase/docportal/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func New(
	jwtSecret string,
	authH *handler.AuthHandler,
	dashH *handler.DashboardHandler,
	docH *handler.DocumentHandler,
	cfgH *handler.ConfigHandler,
	tplH *handler.TemplateHandler,
	msgH *handler.MessagingHandler,
	waH *handler.WhatsAppHandler,
	userH *handler.UserHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/register", authH.Register)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			// Auth
			r.Get("/auth/me", authH.Me)

			// Startup portal
			r.Get("/dashboard", dashH.Dashboard)
			r.Post("/submit", dashH.Submit)

			// Documents
			r.Get("/documents", docH.List)
			r.Post("/documents", docH.Upload)
			r.Get("/documents/{docId}/download", docH.Download)
			r.Delete("/documents/{docId}", docH.Delete)

			// Admin back office
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Get("/admin/overview", dashH.Overview)

				// Startup accounts
				r.Get("/startups", userH.List)
				r.Get("/users/{userId}", userH.Get)
				r.Put("/users/{userId}", userH.Update)

				// Document configs
				r.Get("/configs", cfgH.List)
				r.Post("/configs", cfgH.Create)
				r.Get("/configs/{configId}", cfgH.Get)
				r.Put("/configs/{configId}", cfgH.Update)
				r.Delete("/configs/{configId}", cfgH.Delete)

				// Upload review
				r.Patch("/documents/{docId}/status", docH.UpdateStatus)

				// Message templates
				r.Get("/templates", tplH.List)
				r.Post("/templates", tplH.Create)
				r.Put("/templates/{templateId}", tplH.Update)
				r.Delete("/templates/{templateId}", tplH.Delete)

				// Messaging
				r.Post("/startups/{startupId}/reminder", msgH.Reminder)
				r.Post("/startups/{startupId}/message", msgH.Message)
				r.Get("/startups/{startupId}/message/preview", msgH.Preview)
				r.Get("/startups/{startupId}/notifications", msgH.StartupNotifications)
				r.Post("/reminders/bulk", msgH.Bulk)
				r.Get("/notifications", msgH.Notifications)

				// WhatsApp gateway
				r.Get("/whatsapp/groups", waH.Groups)
				r.Get("/whatsapp/status", waH.Status)
				r.Get("/whatsapp/settings", waH.GetSettings)
				r.Put("/whatsapp/settings", waH.SaveSettings)
			})
		})
	})

	return r
}
