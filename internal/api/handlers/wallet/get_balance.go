package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

type GetBalanceResponse struct {
	Network string `json:"network"`
	Address string `json:"address"`
	Balance string `json:"balance"` // base units as a decimal string
}

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/balance/:network/:address", getBalanceHandler(s))
}

func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		network, err := derive.ParseNetwork(c.Param("network"))
		if err != nil {
			return err
		}
		address := c.Param("address")

		balance, err := s.Wallet.GetBalance(ctx, network, address)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, GetBalanceResponse{
			Network: string(network),
			Address: address,
			Balance: balance.String(),
		})
	}
}
