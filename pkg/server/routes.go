package server

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/riandyrn/otelchi"

	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/auth"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/server/apihandlers"
	"github.com/notaspie/notaspie/pkg/server/webhandlers"
	"github.com/notaspie/notaspie/pkg/web"
)

var log = internal.GetLogger()

const ReadHeaderTimeout = 5 * time.Second

const serviceName = "notaspie"

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) *http.Server {
	router := setupRouter(appState)
	return &http.Server{
		Addr: fmt.Sprintf(
			"%s:%d",
			appState.Config.Server.Host,
			appState.Config.Server.Port,
		),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

// @title						notaspie REST API
// @version					0.x
// @BasePath					/api/v1
// @schemes					http https
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and JWT token.
func setupRouter(appState *models.AppState) *chi.Mux {
	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	if len(appState.Config.Server.CustomHeaders) > 0 {
		router.Use(ApplyCustomHeaders(appState.Config.Server.CustomHeaders))
	}
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(router)))

	router.Group(func(r chi.Router) {
		if appState.Config.Auth.Required {
			log.Info("JWT authentication required")
			r.Use(auth.JWTVerifier(appState.Config))
			r.Use(jwtauth.Authenticator)
		}

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/languages", apihandlers.GetLanguagesHandler(appState))
			r.Route("/correct", func(r chi.Router) {
				r.Post("/text", apihandlers.CorrectTextHandler(appState))
				r.Post("/document", apihandlers.CorrectDocumentHandler(appState))
			})
			r.Get("/documents/{documentID}", apihandlers.GetDocumentHandler(appState))
			r.Delete("/documents/{documentID}", apihandlers.DeleteDocumentHandler(appState))
			r.Post("/preview", apihandlers.PreviewHandler(appState))
		})
	})

	switch {
	case appState.Config.Server.WebEnabled && appState.Config.Auth.Required:
		log.Warn("web UI disabled: it cannot send auth tokens and auth is required")
	case appState.Config.Server.WebEnabled:
		setupWebRoutes(router, appState)
	}

	return router
}

// setupWebRoutes mounts the browser pages.
func setupWebRoutes(router *chi.Mux, appState *models.AppState) {
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		log.Fatalf("Failed to load static assets: %s", err)
	}

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	router.Get("/", webhandlers.IndexHandler(appState))
	router.Post("/correct", webhandlers.CorrectHandler(appState))
	router.NotFound(web.NotFoundHandler())
}
