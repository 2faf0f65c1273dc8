package handlers

import (
	"github.com/labstack/echo/v4"

	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/api/handlers/common"
	"github/seimcp/go-wallet/internal/api/handlers/wallet"
)

// AttachAllRoutes registers every handler on the server's route groups.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		wallet.PostCreateWalletRoute(s),
		wallet.PostImportWalletRoute(s),
		wallet.PostRegisterWalletRoute(s),
		wallet.PostListWalletsRoute(s),
		wallet.PostRemoveWalletRoute(s),
		wallet.PostSendRoute(s),
		wallet.PostFaucetRoute(s),
		wallet.GetBalanceRoute(s),
	}
}
