package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/api/handlers"
	"github/seimcp/go-wallet/internal/api/httperrors"
	"github/seimcp/go-wallet/internal/util"
)

// Init builds the echo instance, middleware chain and route groups, then
// attaches all handlers.
func Init(s *api.Server) {
	s.Echo = echo.New()
	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HTTPErrorHandler = errorHandler

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(middleware.Recover())
	}
	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(middleware.RequestID())
	}
	s.Echo.Use(loggerMiddleware())
	if s.Config.Echo.EnableMetricsMiddleware {
		s.Echo.Use(echoprometheus.NewMiddleware("seiwallet"))
	}

	s.Router = &api.Router{
		Root:        s.Echo.Group(""),
		Management:  s.Echo.Group("/-"),
		APIV1Wallet: s.Echo.Group("/api/v1/wallet"),
	}

	if s.Config.Echo.EnableMetricsMiddleware {
		s.Router.Management.GET("/metrics", echoprometheus.NewHandler())
	}

	handlers.AttachAllRoutes(s)
}

// loggerMiddleware binds a request-scoped zerolog logger into the request
// context and emits one line per completed request.
func loggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			l := log.With().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			c.SetRequest(req.WithContext(util.WithLogger(req.Context(), &l)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			l.Info().
				Int("status", c.Response().Status).
				Msg("Request handled")

			return err
		}
	}
}

// errorHandler renders every error as a public HTTPError payload.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *httperrors.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			httpErr = httperrors.NewHTTPError(echoErr.Code, httperrors.HTTPErrorTypeGeneric, fmt.Sprintf("%v", echoErr.Message))
		} else {
			httpErr = httperrors.FromDomain(err)
		}
	}

	if httpErr.Code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", httpErr.Code).Msg("Request failed")
	}

	if err := c.JSON(httpErr.Code, httpErr); err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}
