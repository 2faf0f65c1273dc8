package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

type PostFaucetPayload struct {
	Network string `json:"network"`
	Address string `json:"address"`
}

func PostFaucetRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/faucet", postFaucetHandler(s))
}

func postFaucetHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body PostFaucetPayload
		if err := bindBody(c, &body); err != nil {
			return err
		}

		network, err := derive.ParseNetwork(body.Network)
		if err != nil {
			return err
		}

		result, err := s.Wallet.Faucet(ctx, network, body.Address)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, result)
	}
}
