package rest

import (
	"aptiprep/internal/service"
	"aptiprep/internal/transport/rest/handler"
	"aptiprep/internal/transport/rest/middleware"
	"aptiprep/internal/transport/ws"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	AptitudeService *service.AptitudeService
	WSHub           *ws.Hub
	Logger          *zap.Logger
	AllowedOrigins  []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.Logger)
	aptitudeHandler := handler.NewAptitudeHandler(c.AptitudeService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)
	r.Use(middleware.RequestLogger(c.Logger))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	origins := c.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// WebSocket route (token in query param)
	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Logger, origins)
		v1.HandleFunc("/ws/progress", wsHandler.ProgressWS).Methods("GET")
	}

	// User routes (require user auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	userRoutes.HandleFunc("/aptitude/questions", aptitudeHandler.GetQuestions).Methods("GET")
	userRoutes.HandleFunc("/aptitude/results", aptitudeHandler.SubmitResults).Methods("POST")
	userRoutes.HandleFunc("/aptitude/summary", aptitudeHandler.GetSummary).Methods("GET")
	userRoutes.HandleFunc("/aptitude/categories/{category}/topics", aptitudeHandler.GetCategoryTopics).Methods("GET")

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(r)
}
