package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"inova-palpites/internal/config"
	"inova-palpites/internal/service"
)

// Dependencies carries everything the HTTP server needs.
type Dependencies struct {
	Config             *config.Config
	AccountService     *service.AccountService
	RosterService      *service.RosterService
	TournamentService  *service.TournamentService
	BetService         *service.BetService
	ResultService      *service.ResultService
	LeaderboardService *service.LeaderboardService
}

// Server is the HTTP front of the league.
type Server struct {
	router      *chi.Mux
	accounts    *service.AccountService
	roster      *service.RosterService
	tournaments *service.TournamentService
	bets        *service.BetService
	results     *service.ResultService
	leaderboard *service.LeaderboardService
	jwtSecret   []byte
	tokenTTL    time.Duration
}

// New builds the router with all routes registered.
func New(deps *Dependencies) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		accounts:    deps.AccountService,
		roster:      deps.RosterService,
		tournaments: deps.TournamentService,
		bets:        deps.BetService,
		results:     deps.ResultService,
		leaderboard: deps.LeaderboardService,
		jwtSecret:   []byte(deps.Config.Auth.JWTSecret),
		tokenTTL:    deps.Config.Auth.TokenTTL,
	}

	r := s.router
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", s.handleListTournaments)
		r.Get("/{tournamentID}", s.handleGetTournament)
		r.Get("/{tournamentID}/leaderboard", s.handleLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Post("/{tournamentID}/rounds/{roundID}/bets", s.handleSubmitBets)
			r.Get("/{tournamentID}/rounds/{roundID}/bets", s.handleMyRoundBets)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Use(s.requireAdmin)
			r.Post("/", s.handleCreateTournament)
			r.Put("/{tournamentID}", s.handleUpdateTournament)
			r.Delete("/{tournamentID}", s.handleDeleteTournament)
			r.Post("/{tournamentID}/cover", s.handleUploadCover)
			r.Post("/{tournamentID}/rounds", s.handleAddRound)
			r.Post("/{tournamentID}/rounds/{roundID}/games", s.handleAddGame)
			r.Put("/{tournamentID}/rounds/{roundID}/results", s.handleUpdateResults)
		})
	})

	r.Route("/players", func(r chi.Router) {
		r.Get("/", s.handleListPlayers)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Use(s.requireAdmin)
			r.Post("/", s.handleAddPlayer)
		})
	})

	r.Route("/profile", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.handleGetProfile)
		r.Put("/", s.handleUpdateProfile)
		r.Post("/avatar", s.handleUploadAvatar)
		r.Get("/achievements", s.handleMyAchievements)
	})

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
