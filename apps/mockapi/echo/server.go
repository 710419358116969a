package echoapi

import (
	"context"
	"net/http"
	"os"
	"strings"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	inmemdb "github.com/SotorivaXL/academic-event-manag-main/storage/inmem"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DB             *inmemdb.DB
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool
		// Shutdown receives SIGTERM when a request hits an unrecoverable error.
		Shutdown chan os.Signal
	}

	Server interface {
		http.Handler
		Start() error
		Shutdown(context.Context) error
	}

	server struct {
		opts   *Options
		app    *echo.Echo
		tokens *tokenIssuer
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:   opts,
		app:    echo.New(),
		tokens: newTokenIssuer(opts.Conf),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.Logger.SetLevel(log.WARN)

	s.app.GET("/", home)

	tg := s.app.Group("/api/v1/:tenant", tenantMiddleware(conf.API.Tenant))
	jwt := middleware.JWTWithConfig(s.tokens.jwtConfig())

	registerAuthAPI(tg, s.opts.DB, s.tokens)

	ag := tg.Group("", jwt, accessTokenMiddleware)
	api := resourceApi{db: s.opts.DB, validate: s.opts.Validate, translator: s.opts.Translator}
	api.registerEvents(ag)
	api.registerStudents(ag)
	api.registerEnrollments(ag)
	api.registerClient(ag)

	if conf.Debug || conf.TestMode {
		tg.POST("/_reset", func(ctx echo.Context) error {
			s.opts.DB.Reset()
			return ctx.NoContent(http.StatusNoContent)
		})
	}
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Conf.Server.Address)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) signalShutdown() {
	if s.opts.Shutdown == nil {
		return
	}
	select {
	case s.opts.Shutdown <- syscall.SIGTERM:
	default: // already signalled
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Eventos mock API")
}

// tenantMiddleware rejects paths whose tenant segment is not the served tenant. An empty tenant serves any.
func tenantMiddleware(tenant string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if tenant != "" && !strings.EqualFold(ctx.Param("tenant"), tenant) {
				return echo.NewHTTPError(http.StatusNotFound, "unknown tenant")
			}
			return next(ctx)
		}
	}
}
