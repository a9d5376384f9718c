package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/amistack/amistack/internal/middleware/custom"
	"github.com/amistack/amistack/internal/store"
)

// Server wraps dependencies for HTTP handlers.
type Server struct {
	Store         *store.Store
	WebhookSecret string // Stripe endpoint secret
}

// NewServer creates a new API server instance.
func NewServer(st *store.Store, webhookSecret string) *Server {
	return &Server{Store: st, WebhookSecret: webhookSecret}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Auth
	r.Post("/api/auth/register", s.handleRegister)
	r.Post("/api/auth/login", s.handleLogin)

	// Public surface: embedded forms, pages, and chat widgets run on
	// third-party origins, so they get CORS plus a per-IP rate limit.
	publicCORS := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	publicLimit := custom.NewRateLimiter(rate.Every(time.Second), 5)

	r.Group(func(r chi.Router) {
		r.Use(publicCORS.Handler)
		r.Use(publicLimit.Limit)

		r.Post("/api/public/forms/{slug}/submit", s.handleSubmitForm)
		r.Get("/api/public/pages/{slug}", s.handleGetPublicPage)
		r.Post("/api/public/chatbots/{chatbotID}/chat", s.handleChat)
	})

	// Stripe webhook: authenticated by signature, not by token
	r.Post("/api/webhooks/stripe", s.handleStripeWebhook)

	// Authenticated tenant API
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/api/auth/me", s.handleMe)

		r.Route("/api/contacts", func(r chi.Router) {
			r.Get("/", s.handleListContacts)
			r.Post("/", s.handleCreateContact)

			r.Route("/{contactID}", func(r chi.Router) {
				r.Get("/", s.handleGetContact)
				r.Put("/", s.handleUpdateContact)
				r.Delete("/", s.handleDeleteContact)
				r.Post("/rescore", s.handleRescoreContact)

				r.Get("/interactions", s.handleListInteractions)
				r.Post("/interactions", s.handleCreateInteraction)
			})
		})
		r.Put("/api/interactions/{interactionID}", s.handleUpdateInteraction)
		r.Delete("/api/interactions/{interactionID}", s.handleDeleteInteraction)

		r.Route("/api/companies", func(r chi.Router) {
			r.Get("/", s.handleListCompanies)
			r.Post("/", s.handleCreateCompany)
			r.Get("/{companyID}", s.handleGetCompany)
			r.Put("/{companyID}", s.handleUpdateCompany)
			r.Delete("/{companyID}", s.handleDeleteCompany)
		})

		r.Get("/api/tags", s.handleListTags)
		r.Post("/api/tags", s.handleCreateTag)
		r.Delete("/api/tags/{tagID}", s.handleDeleteTag)

		r.Route("/api/forms", func(r chi.Router) {
			r.Get("/", s.handleListForms)
			r.Post("/", s.handleCreateForm)
			r.Get("/{formID}", s.handleGetForm)
			r.Put("/{formID}", s.handleUpdateForm)
			r.Delete("/{formID}", s.handleDeleteForm)
			r.Get("/{formID}/submissions", s.handleListSubmissions)
		})

		r.Route("/api/pages", func(r chi.Router) {
			r.Get("/", s.handleListPages)
			r.Post("/", s.handleCreatePage)
			r.Get("/{pageID}", s.handleGetPage)
			r.Put("/{pageID}", s.handleUpdatePage)
			r.Delete("/{pageID}", s.handleDeletePage)
		})

		r.Route("/api/chatbots", func(r chi.Router) {
			r.Get("/", s.handleListChatbots)
			r.Post("/", s.handleCreateChatbot)
			r.Get("/{chatbotID}", s.handleGetChatbot)
			r.Put("/{chatbotID}", s.handleUpdateChatbot)
			r.Delete("/{chatbotID}", s.handleDeleteChatbot)
			r.Get("/{chatbotID}/conversations", s.handleListConversations)
		})

		r.Route("/api/workflows", func(r chi.Router) {
			r.Get("/", s.handleListWorkflows)
			r.Post("/", s.handleCreateWorkflow)
			r.Get("/{workflowID}", s.handleGetWorkflow)
			r.Put("/{workflowID}", s.handleUpdateWorkflow)
			r.Delete("/{workflowID}", s.handleDeleteWorkflow)
		})

		r.Get("/api/analytics/overview", s.handleAnalyticsOverview)
		r.Get("/api/analytics/timeline", s.handleAnalyticsTimeline)
		r.Get("/api/analytics/funnel", s.handleAnalyticsFunnel)
		r.Get("/api/analytics/top-leads", s.handleTopLeads)

		r.Get("/api/billing/subscription", s.handleGetSubscription)
		r.Get("/api/export", s.handleExport)
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
