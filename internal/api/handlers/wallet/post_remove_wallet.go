package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/seimcp/go-wallet/internal/api"
)

type PostRemoveWalletPayload struct {
	WalletName     string `json:"wallet_name"`
	MasterPassword string `json:"master_password"`
}

type PostRemoveWalletResponse struct {
	Removed bool `json:"removed"`
}

func PostRemoveWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/remove", postRemoveWalletHandler(s))
}

func postRemoveWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body PostRemoveWalletPayload
		if err := bindBody(c, &body); err != nil {
			return err
		}

		removed, err := s.Wallet.RemoveWallet(ctx, body.WalletName, body.MasterPassword)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, PostRemoveWalletResponse{Removed: removed})
	}
}
