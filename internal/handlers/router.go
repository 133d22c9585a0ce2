package handlers

import (
	"log/slog"
	"net/http"

	"fritter/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterOptions toggles the operational endpoints.
type RouterOptions struct {
	MetricsEnabled bool
	Logger         *slog.Logger
}

// NewRouter wires every route with its validation chain. Checks run in the
// order listed and the first failure answers the request.
func (s *Server) NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger, s.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(s.AllowedOrigins)))

	r.Get("/health", s.HandleHealth())
	if opts.MetricsEnabled {
		r.Handle("/metrics", s.Metrics.Handler())
	}
	r.Get("/ws", s.HandleWebSocket())

	v := middleware.Validate
	loggedIn := s.isUserLoggedIn()

	r.Group(func(r chi.Router) {
		r.Use(s.Tokens.Authenticate)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.HandleUserRegistration())
			r.Post("/session", s.HandleUserLogin())
			r.With(v(s.isUserExists(pathParam("username")))).Get("/{username}", s.HandleGetUser())
		})

		r.Route("/freets", func(r chi.Router) {
			r.With(v(
				middleware.When(middleware.HasQuery("author"), s.isUserExists(queryParam("author"))),
			)).Get("/", s.HandleGetFreets())
			r.With(v(loggedIn, s.isValidContent("Freet"))).Post("/", s.HandleCreateFreet())

			r.With(v(s.isFreetExists(pathParam("freetId")))).Get("/{freetId}", s.HandleGetFreet())
			r.With(v(
				loggedIn,
				s.isFreetExists(pathParam("freetId")),
				s.isFreetModifier(pathParam("freetId")),
				s.isValidContent("Freet"),
			)).Put("/{freetId}", s.HandleUpdateFreet())
			r.With(v(
				loggedIn,
				s.isFreetExists(pathParam("freetId")),
				s.isFreetModifier(pathParam("freetId")),
			)).Delete("/{freetId}", s.HandleDeleteFreet())
		})

		r.Route("/comments", func(r chi.Router) {
			r.With(v(
				middleware.When(middleware.HasQuery("referenceId"), s.isReferenceExists(queryParam("referenceId"))),
			)).Get("/", s.HandleGetComments())
			r.With(v(
				requireQuery("referenceId"),
				s.isReferenceExists(queryParam("referenceId")),
			)).Get("/count", s.HandleCountComments())
			r.With(v(
				loggedIn,
				s.isReferenceExists(pathParam("referenceId")),
				s.isValidContent("Comment"),
			)).Post("/{referenceId}", s.HandleCreateComment())
			r.With(v(
				loggedIn,
				s.isCommentExists(pathParam("commentId")),
				s.isCommentModifier(pathParam("commentId")),
			)).Delete("/{commentId}", s.HandleDeleteComment())
		})

		r.Route("/likes", func(r chi.Router) {
			r.With(v(
				middleware.When(middleware.HasQuery("user"), s.isUserExists(queryParam("user"))),
				middleware.When(middleware.HasQuery("referenceId"), s.isReferenceExists(queryParam("referenceId"))),
			)).Get("/", s.HandleGetLikes())
			r.With(v(
				requireQuery("referenceId"),
				s.isReferenceExists(queryParam("referenceId")),
			)).Get("/count", s.HandleCountLikes())
			r.With(v(
				requireQuery("referenceId"),
				s.isReferenceExists(queryParam("referenceId")),
			)).Get("/users", s.HandleGetLikers())
			r.With(v(
				loggedIn,
				s.isReferenceExists(bodyField("referenceId")),
				s.isNotLikedAlready(bodyField("referenceId")),
			)).Post("/", s.HandleCreateLike())
			r.With(v(
				loggedIn,
				s.isReferenceExists(pathParam("referenceId")),
				s.isLikeExists(pathParam("referenceId")),
				s.isLikeModifier(pathParam("referenceId")),
			)).Delete("/{referenceId}", s.HandleDeleteLike())
		})

		r.Route("/prompts", func(r chi.Router) {
			r.With(v(
				middleware.When(middleware.HasQuery("user"), s.isUserExists(queryParam("user"))),
			)).Get("/", s.HandleGetPromptResponses())
			r.With(v(
				loggedIn,
				s.isValidContent("Response"),
				s.isNotAnsweredAlready(),
			)).Post("/", s.HandleCreatePromptResponse())
			r.With(v(
				loggedIn,
				s.isResponseExists(pathParam("responseId")),
				s.isResponseModifier(pathParam("responseId")),
				s.isValidContent("Response"),
			)).Put("/{responseId}", s.HandleUpdatePromptResponse())
			r.With(v(
				loggedIn,
				s.isResponseExists(pathParam("responseId")),
				s.isResponseModifier(pathParam("responseId")),
			)).Delete("/{responseId}", s.HandleDeletePromptResponse())
		})
	})

	return r
}
