package http

import (
	"net/http"

	"clinic-agenda/internal/delivery/http/handler"
	"clinic-agenda/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                 *mux.Router
	blockedDayHandler      *handler.BlockedDayHandler
	holidayHandler         *handler.HolidayHandler
	appointmentHandler     *handler.AppointmentHandler
	conversationHandler    *handler.ConversationHandler
	organizationHandler    *handler.OrganizationHandler
	auditLogHandler        *handler.AuditLogHandler
	billingHandler         *handler.BillingHandler
	presenceHandler        *handler.PresenceHandler
	entityRegistry         *handler.EntityRegistry
	socketHandler          http.Handler
	metricsHandler         http.Handler
	authMiddleware         *middleware.AuthMiddleware
	tenantMiddleware       *middleware.TenantMiddleware
	subscriptionMiddleware *middleware.SubscriptionMiddleware
	corsMiddleware         *middleware.CORSMiddleware
	loggingMiddleware      *middleware.LoggingMiddleware
}

type RouterDeps struct {
	BlockedDayHandler      *handler.BlockedDayHandler
	HolidayHandler         *handler.HolidayHandler
	AppointmentHandler     *handler.AppointmentHandler
	ConversationHandler    *handler.ConversationHandler
	OrganizationHandler    *handler.OrganizationHandler
	AuditLogHandler        *handler.AuditLogHandler
	BillingHandler         *handler.BillingHandler
	PresenceHandler        *handler.PresenceHandler
	EntityRegistry         *handler.EntityRegistry
	SocketHandler          http.Handler
	MetricsHandler         http.Handler
	AuthMiddleware         *middleware.AuthMiddleware
	TenantMiddleware       *middleware.TenantMiddleware
	SubscriptionMiddleware *middleware.SubscriptionMiddleware
	CORSMiddleware         *middleware.CORSMiddleware
	LoggingMiddleware      *middleware.LoggingMiddleware
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{
		router:                 mux.NewRouter(),
		blockedDayHandler:      deps.BlockedDayHandler,
		holidayHandler:         deps.HolidayHandler,
		appointmentHandler:     deps.AppointmentHandler,
		conversationHandler:    deps.ConversationHandler,
		organizationHandler:    deps.OrganizationHandler,
		auditLogHandler:        deps.AuditLogHandler,
		billingHandler:         deps.BillingHandler,
		presenceHandler:        deps.PresenceHandler,
		entityRegistry:         deps.EntityRegistry,
		socketHandler:          deps.SocketHandler,
		metricsHandler:         deps.MetricsHandler,
		authMiddleware:         deps.AuthMiddleware,
		tenantMiddleware:       deps.TenantMiddleware,
		subscriptionMiddleware: deps.SubscriptionMiddleware,
		corsMiddleware:         deps.CORSMiddleware,
		loggingMiddleware:      deps.LoggingMiddleware,
	}
}

// Setup registers every route. CORS wraps the router itself so preflight
// requests are answered even though no route matches OPTIONS.
func (r *Router) Setup() http.Handler {
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// Realtime relay; browsers pass token and organization as query parameters
	socket := r.router.PathPrefix("/ws").Subrouter()
	socket.Use(r.authMiddleware.Authenticate)
	socket.Use(r.tenantMiddleware.Resolve)
	socket.Handle("", r.socketHandler).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Stripe webhook (public, signature checked)
	api.HandleFunc("/webhooks/stripe", r.billingHandler.StripeWebhook).Methods(http.MethodPost)

	// Authenticated, no organization yet
	identity := api.NewRoute().Subrouter()
	identity.Use(r.authMiddleware.Authenticate)
	identity.HandleFunc("/organizations", r.organizationHandler.CreateOrganization).Methods(http.MethodPost)
	identity.HandleFunc("/organizations", r.organizationHandler.ListMyOrganizations).Methods(http.MethodGet)
	identity.HandleFunc("/invitations/accept", r.organizationHandler.AcceptInvitation).Methods(http.MethodPost)

	// Admin routes stay reachable without an active subscription
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(r.tenantMiddleware.Resolve)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/members", r.organizationHandler.ListMembers).Methods(http.MethodGet)
	admin.HandleFunc("/invitations", r.organizationHandler.CreateInvitation).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)
	admin.Handle("/organization", middleware.RequireOwner(http.HandlerFunc(r.organizationHandler.DeleteOrganization))).Methods(http.MethodDelete)

	tenant := api.NewRoute().Subrouter()
	tenant.Use(r.authMiddleware.Authenticate)
	tenant.Use(r.tenantMiddleware.Resolve)
	tenant.HandleFunc("/presence", r.presenceHandler.ListPresence).Methods(http.MethodGet)

	// Scheduling requires an active or trialing subscription
	scheduling := api.NewRoute().Subrouter()
	scheduling.Use(r.authMiddleware.Authenticate)
	scheduling.Use(r.tenantMiddleware.Resolve)
	scheduling.Use(r.subscriptionMiddleware.RequireActive)

	scheduling.HandleFunc("/blocked-days", r.blockedDayHandler.CreateBlockedDay).Methods(http.MethodPost)
	scheduling.HandleFunc("/blocked-days", r.blockedDayHandler.ListBlockedDays).Methods(http.MethodGet)
	scheduling.HandleFunc("/blocked-days/{id}", r.blockedDayHandler.DeleteBlockedDay).Methods(http.MethodDelete)

	scheduling.HandleFunc("/holidays", r.holidayHandler.ListHolidays).Methods(http.MethodGet)
	scheduling.HandleFunc("/holidays", r.holidayHandler.CreateHoliday).Methods(http.MethodPost)
	scheduling.HandleFunc("/holidays/{id}", r.holidayHandler.DeleteHoliday).Methods(http.MethodDelete)

	scheduling.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	scheduling.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	scheduling.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	scheduling.HandleFunc("/appointments/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	scheduling.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateAppointmentStatus).Methods(http.MethodPatch)
	scheduling.HandleFunc("/appointments/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	scheduling.HandleFunc("/conversations", r.conversationHandler.ListConversations).Methods(http.MethodGet)
	scheduling.HandleFunc("/conversations", r.conversationHandler.CreateConversation).Methods(http.MethodPost)
	scheduling.HandleFunc("/conversations/{id}/messages", r.conversationHandler.ListMessages).Methods(http.MethodGet)
	scheduling.HandleFunc("/conversations/{id}/messages", r.conversationHandler.SendMessage).Methods(http.MethodPost)
	scheduling.HandleFunc("/conversations/{id}/read", r.conversationHandler.MarkRead).Methods(http.MethodPost)

	// Registered entities; must come after every fixed path above
	scheduling.HandleFunc("/{entity}", r.entityRegistry.List).Methods(http.MethodGet)
	scheduling.HandleFunc("/{entity}", r.entityRegistry.Create).Methods(http.MethodPost)
	scheduling.HandleFunc("/{entity}/{id}", r.entityRegistry.Get).Methods(http.MethodGet)
	scheduling.HandleFunc("/{entity}/{id}", r.entityRegistry.Update).Methods(http.MethodPut)
	scheduling.HandleFunc("/{entity}/{id}", r.entityRegistry.Delete).Methods(http.MethodDelete)

	r.router.Use(r.loggingMiddleware.Handle)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
