package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

type PostCreateWalletPayload struct {
	Network string `json:"network"`
}

func PostCreateWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/create", postCreateWalletHandler(s))
}

func postCreateWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body PostCreateWalletPayload
		if err := bindBody(c, &body); err != nil {
			return err
		}

		network, err := derive.ParseNetwork(body.Network)
		if err != nil {
			return err
		}

		created, err := s.Wallet.CreateWallet(ctx, network)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, created)
	}
}
