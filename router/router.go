package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/yepeleya/jig-projet/cache"
	"github.com/yepeleya/jig-projet/cliparse"
	"github.com/yepeleya/jig-projet/handlers"
	"github.com/yepeleya/jig-projet/metrics"
	"github.com/yepeleya/jig-projet/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, rc *cache.RankingCache) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)
	r.Use(middleware.Instrument)

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(db, cfg, rc)
	juryHandler := handlers.NewJuryHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg, rc)
	voteAdminHandler := handlers.NewVoteAdminHandler(db, cfg, rc)
	resultsHandler := handlers.NewResultsHandler(db, cfg, rc)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Projects
	r.Post("/projects", middleware.WithLogging(projectHandler.CreateProject))
	r.Get("/projects", middleware.WithLogging(projectHandler.ListProjects))
	r.Get("/projects/{id}", middleware.WithLogging(projectHandler.GetProject))
	r.Delete("/projects/{id}", middleware.WithLogging(projectHandler.DeleteProject))

	// Jury (admin)
	r.Post("/jury", middleware.WithLogging(juryHandler.CreateJuryMember))
	r.Get("/jury", middleware.WithLogging(juryHandler.ListJury))

	// Voting
	r.Post("/voters", middleware.WithLogging(votingHandler.ClaimVoter))
	r.Post("/projects/{id}/votes/public", middleware.WithLogging(votingHandler.CastPublicVote))
	r.Post("/projects/{id}/votes/jury", middleware.WithLogging(votingHandler.CastJuryVote))

	// Results
	r.Get("/projects/{id}/score", middleware.WithLogging(resultsHandler.GetScore))
	r.Get("/classement", middleware.WithLogging(resultsHandler.GetClassement))
	r.Get("/scoring", middleware.WithLogging(resultsHandler.GetScoringConfig))
	r.Post("/projects/{id}/recompute", middleware.WithLogging(resultsHandler.Recompute))

	// Administration
	r.Route("/admin", func(r chi.Router) {
		r.Get("/votes", middleware.WithLogging(voteAdminHandler.ListVotes))
		r.Delete("/votes/{id}", middleware.WithLogging(voteAdminHandler.DeleteVote))
		r.Post("/recompute", middleware.WithLogging(resultsHandler.RecomputeAll))
		r.Get("/stats", middleware.WithLogging(resultsHandler.GetStats))
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jig-projet scoring API v1"))
	})

	return r
}
