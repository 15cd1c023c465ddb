package api

import (
	"github.com/avelar/pitch/internal/ai"
	"github.com/avelar/pitch/internal/config"
	"github.com/avelar/pitch/internal/db"
	"github.com/avelar/pitch/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

// proposalID constrains id segments to UUID shape so the generate/* and
// job-match subpaths never collide with the item routes.
const proposalID = "{id:[0-9a-fA-F-]{36}}"

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, engine *ai.Engine) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(database)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, cfg.JWTSecret, cfg.TokenDuration)
	profileHandler := NewProfileHandler(repo, repo, repo, engine)
	experienceHandler := NewExperienceHandler(repo)
	projectHandler := NewProjectHandler(repo, engine)
	proposalHandler := NewProposalHandler(repo)
	generateHandler := NewGenerateHandler(engine, repo)
	dashboardHandler := NewDashboardHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	apiV1.HandleFunc("/auth/signout", authHandler.Signout).Methods("POST")

	// Profile endpoints
	apiV1.HandleFunc("/profile", profileHandler.CreateProfile).Methods("POST")
	apiV1.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")
	apiV1.HandleFunc("/profile", profileHandler.UpdateProfile).Methods("PUT")

	// Experience endpoints
	apiV1.HandleFunc("/experiences", experienceHandler.Create).Methods("POST")
	apiV1.HandleFunc("/experiences", experienceHandler.List).Methods("GET")
	apiV1.HandleFunc("/experiences/{id:[0-9]+}", experienceHandler.Update).Methods("PUT")
	apiV1.HandleFunc("/experiences/{id:[0-9]+}", experienceHandler.Delete).Methods("DELETE")

	// Project endpoints
	apiV1.HandleFunc("/projects", projectHandler.Create).Methods("POST")
	apiV1.HandleFunc("/projects", projectHandler.List).Methods("GET")
	apiV1.HandleFunc("/projects/{id:[0-9]+}", projectHandler.Get).Methods("GET")
	apiV1.HandleFunc("/projects/{id:[0-9]+}", projectHandler.Update).Methods("PUT")
	apiV1.HandleFunc("/projects/{id:[0-9]+}", projectHandler.Delete).Methods("DELETE")

	// Proposal generation endpoints
	apiV1.HandleFunc("/proposals/generate/pain-points", generateHandler.PainPoints).Methods("POST")
	apiV1.HandleFunc("/proposals/generate/targeted-proposal", generateHandler.TargetedProposal).Methods("POST")
	apiV1.HandleFunc("/proposals/generate/humanize", generateHandler.Humanize).Methods("POST")
	apiV1.HandleFunc("/proposals/job-match/analyze", generateHandler.JobMatch).Methods("POST")
	apiV1.HandleFunc("/proposals/create", generateHandler.Create).Methods("POST")

	// Proposal CRUD endpoints
	apiV1.HandleFunc("/proposals", proposalHandler.List).Methods("GET")
	apiV1.HandleFunc("/proposals/"+proposalID, proposalHandler.Get).Methods("GET")
	apiV1.HandleFunc("/proposals/"+proposalID, proposalHandler.Update).Methods("PUT", "PATCH")
	apiV1.HandleFunc("/proposals/"+proposalID, proposalHandler.Delete).Methods("DELETE")

	// Dashboard endpoints
	apiV1.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods("GET")

	return r
}
