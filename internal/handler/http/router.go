package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/bookborrower/internal/service"
	"github.com/utafrali/bookborrower/pkg/health"
	"github.com/utafrali/bookborrower/pkg/httputil"
	"github.com/utafrali/bookborrower/pkg/middleware"
)

// Services groups the application services exposed over HTTP.
type Services struct {
	Users   *service.UserService
	Books   *service.BookService
	Reviews *service.ReviewService
	Borrows *service.BorrowService
}

// RouterConfig carries the cross-cutting pieces of the router.
// Metrics and Gatherer may be nil, in which case no metrics are recorded
// or exposed. A nil RateLimiter leaves /api unlimited.
type RouterConfig struct {
	Health      *health.Handler
	Metrics     *middleware.HTTPMetrics
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
	CORS        middleware.CORSConfig
	Logger      *slog.Logger
}

// NewRouter creates a chi router with all book borrower routes registered.
func NewRouter(svcs Services, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing())
	r.Use(middleware.RequestLogger(logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.StripSlashes)

	r.Get("/", root)

	// Health check endpoints
	if cfg.Health != nil {
		r.Get("/health/live", cfg.Health.LivenessHandler())
		r.Get("/health/ready", cfg.Health.ReadinessHandler())
	}
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	userHandler := NewUserHandler(svcs.Users, svcs.Books, svcs.Reviews, svcs.Borrows, logger)
	bookHandler := NewBookHandler(svcs.Books, svcs.Reviews, svcs.Borrows, logger)
	reviewHandler := NewReviewHandler(svcs.Reviews, logger)
	borrowHandler := NewBorrowHandler(svcs.Borrows, logger)

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}
		r.Use(ContentTypeJSON)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUser)
			r.Get("/", userHandler.ListUsers)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.GetUser)
				r.Get("/books", userHandler.ListBooks)
				r.Get("/book-reviews", userHandler.ListBookReviews)
				r.Get("/reviews-given", userHandler.ListReviewsGiven)
				r.Get("/reviews-received", userHandler.ListReviewsReceived)
				r.Get("/borrows", userHandler.ListBorrows)
			})
		})

		r.Route("/books", func(r chi.Router) {
			r.Post("/", bookHandler.CreateBook)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", bookHandler.GetBook)
				r.Get("/reviews", bookHandler.ListReviews)
				r.Get("/borrows", bookHandler.ListBorrows)
			})
		})

		r.Post("/book-reviews", reviewHandler.CreateBookReview)
		r.Post("/user-reviews", reviewHandler.CreateUserReview)
		r.Post("/borrows", borrowHandler.CreateBorrow)
	})

	return r
}

// root handles GET /
func root(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Book Borrower Root"})
}
