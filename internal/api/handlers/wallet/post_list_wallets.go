package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/wallet/vault"
)

// The master password travels in a POST body rather than a query string so
// it never lands in access logs.
type PostListWalletsPayload struct {
	MasterPassword string `json:"master_password"`
}

type PostListWalletsResponse struct {
	Wallets []vault.Entry `json:"wallets"`
}

func PostListWalletsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/list", postListWalletsHandler(s))
}

func postListWalletsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body PostListWalletsPayload
		if err := bindBody(c, &body); err != nil {
			return err
		}

		entries, err := s.Wallet.ListWallets(ctx, body.MasterPassword)
		if err != nil {
			return err
		}

		if entries == nil {
			entries = []vault.Entry{}
		}

		return c.JSON(http.StatusOK, PostListWalletsResponse{Wallets: entries})
	}
}
