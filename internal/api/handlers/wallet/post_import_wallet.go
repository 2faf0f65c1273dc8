package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

type PostImportWalletPayload struct {
	Network string `json:"network"`
	// Secret is either a BIP39 recovery phrase or a hex private key.
	Secret string `json:"secret"`
}

func PostImportWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/import", postImportWalletHandler(s))
}

func postImportWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body PostImportWalletPayload
		if err := bindBody(c, &body); err != nil {
			return err
		}

		network, err := derive.ParseNetwork(body.Network)
		if err != nil {
			return err
		}

		imported, err := s.Wallet.ImportWallet(ctx, network, body.Secret)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, imported)
	}
}
