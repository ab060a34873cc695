// Package httpapi exposes the account and movie services over HTTP.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/filmlog/internal/logging"
	"github.com/dmitrijs2005/filmlog/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var corsHeaders = []string{
	"X-Requested-With", "X-HTTP-Method-Override", "Content-Type",
	"Accept", "Authorization", "Origin",
}

// RouterDeps are the collaborators of NewRouter. Sessions may be nil, in
// which case tokens cannot be revoked.
type RouterDeps struct {
	Users       UserService
	Movies      MovieService
	Sessions    SessionChecker
	Codec       *auth.TokenCodec
	Logger      logging.Logger
	CORSOrigins []string
}

// NewRouter builds the full HTTP surface.
func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop{}
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &handlers{users: d.Users, movies: d.Movies, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   corsHeaders,
		ExposedHeaders:   corsHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(Detokenize(d.Codec))

	r.Get("/healthz", h.health)
	r.Post("/echo", h.echo)
	r.Post("/users", h.createUser)
	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(d.Codec, d.Sessions))

		r.Post("/logout", h.logout)

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Use(Authorize("userId"))

			r.Get("/", h.getUser)
			r.Put("/", h.updateUser)
			r.Delete("/", h.deleteUser)

			r.Get("/movies", h.listMovies)
			r.Post("/movies", h.createMovie)
			r.Get("/movies/{movieId}", h.getMovie)
			r.Put("/movies/{movieId}", h.updateMovie)
			r.Delete("/movies/{movieId}", h.deleteMovie)
		})
	})

	return r
}
