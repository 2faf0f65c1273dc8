package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/seimcp/go-wallet/internal/api"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler is a liveness probe. It answers as long as the process
// serves requests, regardless of component state.
func getHealthyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy.")
	}
}
