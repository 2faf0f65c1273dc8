package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/seimcp/go-wallet/internal/api"
)

type PostRegisterWalletPayload struct {
	WalletName     string `json:"wallet_name"`
	PrivateKey     string `json:"private_key"`
	MasterPassword string `json:"master_password"`
}

type PostRegisterWalletResponse struct {
	WalletName    string `json:"wallet_name"`
	PublicAddress string `json:"public_address"`
}

func PostRegisterWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/register", postRegisterWalletHandler(s))
}

func postRegisterWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body PostRegisterWalletPayload
		if err := bindBody(c, &body); err != nil {
			return err
		}

		entry, err := s.Wallet.RegisterWallet(ctx, body.WalletName, body.PrivateKey, body.MasterPassword)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, PostRegisterWalletResponse{
			WalletName:    entry.WalletName,
			PublicAddress: entry.PublicAddress,
		})
	}
}
