package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/usecase"
	"github.com/adibtatriantama/FCC-Book-Trading/interfaces/http/rest/handlers"
	"github.com/adibtatriantama/FCC-Book-Trading/interfaces/http/rest/middleware"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/auth"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/common"
)

// Router creates and configures the HTTP router
type Router struct {
	userService  *usecase.UserService
	bookService  *usecase.BookService
	tradeService *usecase.TradeService
	validator    *auth.JWTValidator
	enableCORS   bool
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	userService *usecase.UserService,
	bookService *usecase.BookService,
	tradeService *usecase.TradeService,
	validator *auth.JWTValidator,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		userService:  userService,
		bookService:  bookService,
		tradeService: tradeService,
		validator:    validator,
		enableCORS:   enableCORS,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		userHandler := handlers.NewUserHandler(rt.userService, rt.logger)
		bookHandler := handlers.NewBookHandler(rt.bookService, rt.logger)
		tradeHandler := handlers.NewTradeHandler(rt.tradeService, rt.logger)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.RegisterUser)
			r.Get("/me", userHandler.GetMe)
			r.Put("/me", userHandler.UpdateMe)
			r.Get("/{userID}", userHandler.GetUser)
			r.Get("/{userID}/books", bookHandler.ListBooksByOwner)
		})

		r.Route("/books", func(r chi.Router) {
			r.Post("/", bookHandler.AddBook)
			r.Get("/", bookHandler.ListRecentBooks)
			r.Get("/{bookID}", bookHandler.GetBook)
			r.Delete("/{bookID}", bookHandler.RemoveBook)
		})

		r.Route("/trades", func(r chi.Router) {
			r.Post("/", tradeHandler.CreateTrade)
			r.Get("/", tradeHandler.ListTrades)
			r.Get("/{tradeID}", tradeHandler.GetTrade)
			r.Post("/{tradeID}/accept", tradeHandler.AcceptTrade)
			r.Post("/{tradeID}/reject", tradeHandler.RejectTrade)
			r.Delete("/{tradeID}", tradeHandler.RemoveTrade)
		})
	})

	return router
}

// healthCheck handles GET /health
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
